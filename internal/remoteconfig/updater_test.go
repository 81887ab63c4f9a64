package remoteconfig

import (
	"errors"
	"testing"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
)

// fakeSampling records applied sampling settings.
type fakeSampling struct {
	rate      float64
	rateSet   bool
	limit     float64
	limitSet  bool
	rejectAll bool
}

func (f *fakeSampling) SetRate(rate float64) error {
	if f.rejectAll {
		return errors.New("sampler rejected rate")
	}
	f.rate = rate
	f.rateSet = true
	return nil
}

func (f *fakeSampling) SetRateLimit(perSecond float64) {
	f.limit = perSecond
	f.limitSet = true
}

func floatPtr(v float64) *float64 { return &v }

func TestLiveUpdaterAppliesSampling(t *testing.T) {
	sampling := &fakeSampling{}
	u := NewLiveUpdater(sampling, WithUpdaterLogger(quietLogger(t)))

	cfg := &Configuration{
		Revision: "r1",
		Tracing: TracingSection{
			SamplingRate: floatPtr(0.25),
			RateLimit:    floatPtr(100),
		},
	}

	if err := u.Accept(cfg); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !sampling.rateSet || sampling.rate != 0.25 {
		t.Errorf("rate = (%v, %v), want (0.25, true)", sampling.rate, sampling.rateSet)
	}
	if !sampling.limitSet || sampling.limit != 100 {
		t.Errorf("limit = (%v, %v), want (100, true)", sampling.limit, sampling.limitSet)
	}
}

func TestLiveUpdaterAppliesLogLevel(t *testing.T) {
	defer logger.SetLevel("info")

	u := NewLiveUpdater(nil, WithUpdaterLogger(quietLogger(t)))

	cfg := &Configuration{Tracing: TracingSection{LogLevel: "debug"}}
	if err := u.Accept(cfg); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if logger.GetLevel() != "debug" {
		t.Errorf("log level = %q, want debug", logger.GetLevel())
	}
}

func TestLiveUpdaterRejectsInvalid(t *testing.T) {
	sampling := &fakeSampling{}
	u := NewLiveUpdater(sampling, WithUpdaterLogger(quietLogger(t)))

	tests := []struct {
		name string
		cfg  *Configuration
	}{
		{
			name: "negative poll interval",
			cfg:  &Configuration{Ops: OpsSection{PollIntervalSeconds: -1}},
		},
		{
			name: "unknown log level",
			cfg:  &Configuration{Tracing: TracingSection{LogLevel: "verbose"}},
		},
		{
			name: "sampling rate above 1",
			cfg:  &Configuration{Tracing: TracingSection{SamplingRate: floatPtr(1.5)}},
		},
		{
			name: "negative sampling rate",
			cfg:  &Configuration{Tracing: TracingSection{SamplingRate: floatPtr(-0.1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.Accept(tt.cfg)
			if !domain.IsDomainError(err, "TR-CONF-4000") {
				t.Errorf("Accept() error = %v, want TR-CONF-4000", err)
			}
			if sampling.rateSet || sampling.limitSet {
				t.Error("rejected configuration must not touch sampling state")
			}
		})
	}
}

func TestLiveUpdaterNilConfiguration(t *testing.T) {
	u := NewLiveUpdater(nil, WithUpdaterLogger(quietLogger(t)))
	if err := u.Accept(nil); err == nil {
		t.Error("Accept(nil) should fail")
	}
}

func TestLiveUpdaterSamplerRejection(t *testing.T) {
	sampling := &fakeSampling{rejectAll: true}
	u := NewLiveUpdater(sampling, WithUpdaterLogger(quietLogger(t)))

	cfg := &Configuration{Tracing: TracingSection{SamplingRate: floatPtr(0.5)}}
	err := u.Accept(cfg)
	if !domain.IsDomainError(err, "TR-CONF-5022") {
		t.Errorf("Accept() error = %v, want TR-CONF-5022", err)
	}
}

func TestLiveUpdaterNilSamplingTarget(t *testing.T) {
	u := NewLiveUpdater(nil, WithUpdaterLogger(quietLogger(t)))

	cfg := &Configuration{Tracing: TracingSection{SamplingRate: floatPtr(0.5)}}
	if err := u.Accept(cfg); err != nil {
		t.Errorf("Accept() with nil target should ignore sampling overrides, got %v", err)
	}
}
