// Package sampler implements trace sampling decisions for TraceMesh.
//
// Sampling is deterministic per trace ID: the ID is hashed with
// murmur3 and compared against the configured rate, so every span of a
// trace gets the same decision regardless of which process takes it.
// An optional token-bucket cap bounds the absolute number of sampled
// traces per second.
//
// Both knobs are safe to adjust at runtime; the remote configuration
// updater drives them through the SetRate/SetRateLimit methods.
//
// @req RQ-0301
// @design DS-0301
package sampler

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/spaolacci/murmur3"
	"golang.org/x/time/rate"
)

// Probabilistic keeps a trace with probability equal to its rate,
// deterministically per trace ID.
type Probabilistic struct {
	// rateBits holds math.Float64bits of the rate so the value can
	// be swapped atomically.
	rateBits atomic.Uint64
}

// NewProbabilistic creates a sampler with the given rate in [0, 1].
func NewProbabilistic(samplingRate float64) (*Probabilistic, error) {
	s := &Probabilistic{}
	if err := s.SetRate(samplingRate); err != nil {
		return nil, err
	}
	return s, nil
}

// Rate returns the current sampling rate.
func (s *Probabilistic) Rate() float64 {
	return math.Float64frombits(s.rateBits.Load())
}

// SetRate replaces the sampling rate. Rates outside [0, 1] are
// rejected and leave the current rate untouched.
func (s *Probabilistic) SetRate(samplingRate float64) error {
	if samplingRate < 0 || samplingRate > 1 || math.IsNaN(samplingRate) {
		return fmt.Errorf("sampling rate %v outside [0, 1]", samplingRate)
	}
	s.rateBits.Store(math.Float64bits(samplingRate))
	return nil
}

// Sample reports whether the trace identified by traceID should be
// kept. The decision depends only on the ID and the current rate.
func (s *Probabilistic) Sample(traceID string) bool {
	r := s.Rate()
	if r >= 1 {
		return true
	}
	if r <= 0 {
		return false
	}
	h := murmur3.Sum64([]byte(traceID))
	return float64(h) < r*float64(math.MaxUint64)
}

// RateLimited combines probabilistic sampling with an absolute
// sampled-traces-per-second cap. It implements the control plane's
// sampling target, so both knobs can change at runtime.
type RateLimited struct {
	prob *Probabilistic

	// limiter is nil when no cap is configured.
	limiter atomic.Pointer[rate.Limiter]
}

// NewRateLimited creates a sampler with the given rate and cap.
// perSecond <= 0 disables the cap.
func NewRateLimited(samplingRate, perSecond float64) (*RateLimited, error) {
	prob, err := NewProbabilistic(samplingRate)
	if err != nil {
		return nil, err
	}
	s := &RateLimited{prob: prob}
	s.SetRateLimit(perSecond)
	return s, nil
}

// Rate returns the current sampling rate.
func (s *RateLimited) Rate() float64 {
	return s.prob.Rate()
}

// SetRate replaces the sampling rate.
func (s *RateLimited) SetRate(samplingRate float64) error {
	return s.prob.SetRate(samplingRate)
}

// SetRateLimit replaces the sampled-traces-per-second cap. Zero or
// negative disables the cap. The previous limiter's token state is
// discarded.
func (s *RateLimited) SetRateLimit(perSecond float64) {
	if perSecond <= 0 {
		s.limiter.Store(nil)
		return
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	s.limiter.Store(rate.NewLimiter(rate.Limit(perSecond), burst))
}

// Sample reports whether the trace should be kept. A trace passing the
// probabilistic decision may still be dropped by the cap.
func (s *RateLimited) Sample(traceID string) bool {
	if !s.prob.Sample(traceID) {
		return false
	}
	if l := s.limiter.Load(); l != nil {
		return l.Allow()
	}
	return true
}
