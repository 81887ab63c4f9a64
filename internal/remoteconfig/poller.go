// Package remoteconfig implements the dynamic instrumentation control
// plane client.
package remoteconfig

import (
	"context"
	"sync"
	"time"

	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
	"github.com/yndnr/tracemesh-go/internal/telemetry/metric"
)

// Poll interval bounds.
const (
	// DefaultPollInterval applies until a fetched configuration
	// carries an interval override.
	DefaultPollInterval = 10 * time.Second

	// MaxPollInterval caps the backoff delay regardless of how many
	// consecutive cycles came back empty or failed.
	MaxPollInterval = 25 * time.Second
)

// Poller drives the fetch → apply → backoff loop against the control
// plane. It never terminates on its own: recoverable fetch and apply
// failures are logged and retried with linear backoff, and only
// Shutdown stops the loop. Panics from the fetcher or updater are not
// recovered and unwind through Start.
//
// All loop-owned state (retry counter, effective interval, last
// configuration) is touched only by the Start goroutine and needs no
// locking.
//
// @req RQ-0203
// @design DS-0203
type Poller struct {
	fetcher Fetcher
	updater Updater
	log     logger.Logger
	metrics *metric.Registry

	interval    time.Duration // from the last applied override, else default
	maxInterval time.Duration
	retries     int64
	lastCfg     *Configuration

	done     chan struct{}
	stopOnce sync.Once
	finished chan struct{}

	// wait blocks for the backoff delay; it reports false when
	// shutdown fired during the wait. Replaced in tests.
	wait func(time.Duration) bool
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithLogger sets the poller's logger.
func WithLogger(log logger.Logger) PollerOption {
	return func(p *Poller) {
		p.log = log
	}
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metric.Registry) PollerOption {
	return func(p *Poller) {
		p.metrics = m
	}
}

// WithPollInterval overrides the default poll interval.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithMaxInterval overrides the backoff ceiling.
func WithMaxInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.maxInterval = d
		}
	}
}

// NewPoller creates a poller. Start it once; create a new poller
// instead of restarting a stopped one.
func NewPoller(fetcher Fetcher, updater Updater, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:     fetcher,
		updater:     updater,
		log:         logger.Default(),
		interval:    DefaultPollInterval,
		maxInterval: MaxPollInterval,
		retries:     1,
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
	p.wait = p.sleep

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start runs the polling loop and returns only after Shutdown has been
// observed. Call it at most once, typically in its own goroutine.
func (p *Poller) Start() {
	defer close(p.finished)

	p.log.Info("configuration poller started",
		"interval", p.interval,
		"max_interval", p.maxInterval)

	for {
		select {
		case <-p.done:
			p.log.Info("configuration poller stopped")
			return
		default:
		}

		// The fetch is deliberately not tied to the shutdown
		// signal: an in-flight call runs to completion and the
		// latch is observed afterwards.
		p.cycle()

		if !p.wait(p.backoffDelay()) {
			p.log.Info("configuration poller stopped")
			return
		}
	}
}

// cycle performs one fetch/apply step and adjusts the retry counter.
func (p *Poller) cycle() {
	cfg, err := p.fetcher.GetConfigurations(context.Background())
	switch {
	case err != nil:
		p.retries++
		p.count("fetch_error")
		p.log.Warn("configuration fetch failed",
			"error", err,
			"consecutive_misses", p.retries-1)

	case cfg == nil:
		// No update available.
		p.retries++
		p.count("absent")

	default:
		p.retries = 1
		if err := p.updater.Accept(cfg); err != nil {
			p.retries++
			p.count("apply_error")
			p.log.Warn("configuration apply failed",
				"revision", cfg.Revision,
				"error", err)
			return
		}
		p.lastCfg = cfg
		if s := cfg.Ops.PollIntervalSeconds; s > 0 {
			p.interval = time.Duration(s) * time.Second
		}
		p.count("applied")
		if p.metrics != nil {
			p.metrics.ConfigApplied.Inc()
		}
	}
}

// backoffDelay computes min(interval × retries, maxInterval).
func (p *Poller) backoffDelay() time.Duration {
	if p.interval <= 0 {
		return p.maxInterval
	}
	if time.Duration(p.retries) > p.maxInterval/p.interval {
		return p.maxInterval
	}
	return time.Duration(p.retries) * p.interval
}

// sleep waits for d or until shutdown, whichever comes first.
func (p *Poller) sleep(d time.Duration) bool {
	if p.metrics != nil {
		p.metrics.PollDelay.Set(d.Seconds())
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.done:
		return false
	}
}

// Shutdown signals the loop to stop. It is idempotent, safe to call
// concurrently with a running loop, and does not wait for the loop to
// exit; callers needing to join should select on Done. A fetch already
// in flight is not interrupted.
func (p *Poller) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

// Done is closed once the loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.finished
}

func (p *Poller) count(result string) {
	if p.metrics != nil {
		p.metrics.ConfigFetches.WithLabelValues(result).Inc()
	}
}
