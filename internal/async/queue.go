// Package async runs page extraction off the ingest hot path.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pressarchive/newspaper-ocr/internal/pipeline"
)

// Job is the smallest useful unit: one scan to extract.
type Job struct {
	ScanPath    string
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.size = n
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// ProcessorQueue fans jobs out to a fixed worker pool over the extraction
// pipeline. Enqueue never blocks past the buffer; a full queue is an error
// the caller can surface.
type ProcessorQueue struct {
	processor *pipeline.Processor
	logger    *slog.Logger

	workers int
	size    int
	timeout time.Duration

	jobs chan Job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewProcessorQueue(p *pipeline.Processor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		processor: p,
		logger:    logger,
		workers:   4,
		size:      256,
		timeout:   3 * time.Minute,
	}
	for _, o := range opts {
		o(q)
	}
	q.jobs = make(chan Job, q.size)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	if job.TraceID == "" {
		job.TraceID = uuid.NewString()
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now().UTC()
	}

	// Held across the send so Shutdown cannot close the channel mid-enqueue.
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errors.New("queue is shut down")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.New("queue is full")
	}
}

func (q *ProcessorQueue) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		id, err := q.processor.ProcessPage(ctx, job.ScanPath)
		cancel()
		if err != nil {
			q.logger.Error("async.process.failed",
				"scan_path", job.ScanPath,
				"trace_id", job.TraceID,
				"error", err,
			)
			continue
		}
		q.logger.Info("async.process.ok",
			"scan_path", job.ScanPath,
			"page_id", id,
			"trace_id", job.TraceID,
			"queued_ms", time.Since(job.SubmittedAt).Milliseconds(),
		)
	}
}

// Shutdown stops accepting jobs and waits for in-flight work, bounded by ctx.
func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		q.logger.Warn("async.shutdown.timeout")
	}
}
