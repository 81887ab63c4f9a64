package export

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/tracemesh-go/internal/core/domain"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
	"github.com/yndnr/tracemesh-go/internal/telemetry/metric"
)

// Batching defaults.
const (
	// DefaultBatchSize is the number of spans that triggers an
	// immediate flush.
	DefaultBatchSize = 100

	// DefaultFlushInterval bounds how long a partial batch waits
	// before it is shipped anyway.
	DefaultFlushInterval = 2 * time.Second

	// DefaultQueueSize is the Enqueue buffer. Spans arriving while
	// the queue is full are dropped, never blocked on.
	DefaultQueueSize = 1024

	// DefaultSendTimeout bounds a single Send call.
	DefaultSendTimeout = 10 * time.Second
)

// Exporter accumulates finished spans and ships them in batches.
//
// Enqueue never blocks the instrumented application: spans go into a
// buffered queue and a single background goroutine drains it, flushing
// when a batch fills or the flush interval elapses. A failed send drops
// the batch; spans are not retried.
//
// @req RQ-0105
// @design DS-0105
type Exporter struct {
	sender      Sender
	log         logger.Logger
	metrics     *metric.Registry
	batchSize   int
	flushEvery  time.Duration
	sendTimeout time.Duration

	queue    chan *domain.Span
	closed   atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	finished chan struct{}
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the exporter's logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// WithBatchSize overrides the flush-triggering batch size.
func WithBatchSize(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithFlushInterval overrides the periodic flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(e *Exporter) {
		if d > 0 {
			e.flushEvery = d
		}
	}
}

// WithQueueSize overrides the Enqueue buffer size.
func WithQueueSize(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.queue = make(chan *domain.Span, n)
		}
	}
}

// WithSendTimeout overrides the per-batch send timeout.
func WithSendTimeout(d time.Duration) Option {
	return func(e *Exporter) {
		if d > 0 {
			e.sendTimeout = d
		}
	}
}

// New creates an exporter. Start it once; create a new exporter
// instead of restarting a stopped one.
func New(sender Sender, opts ...Option) *Exporter {
	e := &Exporter{
		sender:      sender,
		log:         logger.Default(),
		batchSize:   DefaultBatchSize,
		flushEvery:  DefaultFlushInterval,
		sendTimeout: DefaultSendTimeout,
		queue:       make(chan *domain.Span, DefaultQueueSize),
		done:        make(chan struct{}),
		finished:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enqueue implements the tracer's span sink. It never blocks: a full
// queue or a stopped exporter rejects the span with an error.
func (e *Exporter) Enqueue(span *domain.Span) error {
	if e.closed.Load() {
		return domain.ErrExporterClosed
	}
	select {
	case e.queue <- span:
		return nil
	default:
		return domain.ErrExportSend.WithDetails("export queue full")
	}
}

// Start runs the flush loop and returns only after Shutdown has been
// observed and the queue drained. Call it at most once, typically in
// its own goroutine.
func (e *Exporter) Start() {
	defer close(e.finished)

	e.log.Info("span exporter started",
		"batch_size", e.batchSize,
		"flush_interval", e.flushEvery)

	ticker := time.NewTicker(e.flushEvery)
	defer ticker.Stop()

	batch := make([]*domain.Span, 0, e.batchSize)

	for {
		select {
		case span := <-e.queue:
			batch = append(batch, span)
			if len(batch) >= e.batchSize {
				e.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				e.flush(batch)
				batch = batch[:0]
			}

		case <-e.done:
			// Drain whatever was enqueued before the latch.
			for {
				select {
				case span := <-e.queue:
					batch = append(batch, span)
					if len(batch) >= e.batchSize {
						e.flush(batch)
						batch = batch[:0]
					}
					continue
				default:
				}
				break
			}
			if len(batch) > 0 {
				e.flush(batch)
			}
			e.log.Info("span exporter stopped")
			return
		}
	}
}

// flush ships one batch, counting the outcome.
func (e *Exporter) flush(batch []*domain.Span) {
	ctx, cancel := context.WithTimeout(context.Background(), e.sendTimeout)
	defer cancel()

	start := time.Now()
	err := e.sender.Send(ctx, batch)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.ExportDuration.Observe(elapsed.Seconds())
	}

	if err != nil {
		if e.metrics != nil {
			e.metrics.ExportBatches.WithLabelValues("error").Inc()
		}
		e.log.Warn("span batch send failed",
			"spans", len(batch),
			"error", err)
		return
	}

	if e.metrics != nil {
		e.metrics.ExportBatches.WithLabelValues("ok").Inc()
		e.metrics.ExportedSpans.Add(float64(len(batch)))
	}
	e.log.Debug("span batch sent",
		"spans", len(batch),
		"elapsed", elapsed)
}

// Shutdown stops the exporter and waits for the final flush. It is
// idempotent. The context bounds the wait, not the flush itself.
func (e *Exporter) Shutdown(ctx context.Context) error {
	e.closed.Store(true)
	e.stopOnce.Do(func() {
		close(e.done)
	})

	select {
	case <-e.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the flush loop has exited.
func (e *Exporter) Done() <-chan struct{} {
	return e.finished
}
