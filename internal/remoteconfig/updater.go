// Package remoteconfig implements the dynamic instrumentation control
// plane client.
package remoteconfig

import (
	"fmt"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
)

// SamplingTarget is the live sampling state adjusted by the updater.
// Implemented by sampler.RateLimited.
type SamplingTarget interface {
	// SetRate replaces the sampling rate. Rates outside [0, 1] are
	// rejected.
	SetRate(rate float64) error

	// SetRateLimit replaces the sampled-traces-per-second cap.
	// Zero or negative disables the cap.
	SetRateLimit(perSecond float64)
}

// LiveUpdater applies accepted configurations to the running tracer:
// log level and sampling settings. Validation happens before any state
// is touched, so a rejected configuration leaves the tracer unchanged.
//
// @req RQ-0202
// @design DS-0202
type LiveUpdater struct {
	sampling SamplingTarget
	log      logger.Logger
}

// LiveUpdaterOption configures a LiveUpdater.
type LiveUpdaterOption func(*LiveUpdater)

// WithUpdaterLogger sets the logger used by the updater.
func WithUpdaterLogger(log logger.Logger) LiveUpdaterOption {
	return func(u *LiveUpdater) {
		u.log = log
	}
}

// NewLiveUpdater creates an updater targeting the given sampling state.
// A nil target is allowed; sampling overrides are then ignored.
func NewLiveUpdater(sampling SamplingTarget, opts ...LiveUpdaterOption) *LiveUpdater {
	u := &LiveUpdater{
		sampling: sampling,
		log:      logger.Default(),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Accept implements Updater.
func (u *LiveUpdater) Accept(cfg *Configuration) error {
	if cfg == nil {
		return domain.ErrMissingArgument.WithDetails("configuration is nil")
	}
	if err := u.validate(cfg); err != nil {
		return err
	}

	if cfg.Tracing.LogLevel != "" {
		logger.SetLevel(cfg.Tracing.LogLevel)
		u.log.Debug("log level updated", "level", cfg.Tracing.LogLevel)
	}

	if u.sampling != nil {
		if cfg.Tracing.SamplingRate != nil {
			if err := u.sampling.SetRate(*cfg.Tracing.SamplingRate); err != nil {
				return domain.ErrConfigApply.WithCause(err)
			}
			u.log.Debug("sampling rate updated", "rate", *cfg.Tracing.SamplingRate)
		}
		if cfg.Tracing.RateLimit != nil {
			u.sampling.SetRateLimit(*cfg.Tracing.RateLimit)
			u.log.Debug("sampling rate limit updated", "per_second", *cfg.Tracing.RateLimit)
		}
	}

	u.log.Info("configuration applied",
		"revision", cfg.Revision,
		"poll_interval_s", cfg.Ops.PollIntervalSeconds)

	return nil
}

// validate rejects a configuration before anything is applied.
func (u *LiveUpdater) validate(cfg *Configuration) error {
	if cfg.Ops.PollIntervalSeconds < 0 {
		return domain.ErrConfigInvalid.WithDetails(
			fmt.Sprintf("poll_interval_seconds is negative: %d", cfg.Ops.PollIntervalSeconds))
	}
	if cfg.Tracing.LogLevel != "" && !logger.ValidLevel(cfg.Tracing.LogLevel) {
		return domain.ErrConfigInvalid.WithDetails(
			fmt.Sprintf("unknown log level %q", cfg.Tracing.LogLevel))
	}
	if r := cfg.Tracing.SamplingRate; r != nil && (*r < 0 || *r > 1) {
		return domain.ErrConfigInvalid.WithDetails(
			fmt.Sprintf("sampling_rate %v outside [0, 1]", *r))
	}
	return nil
}
