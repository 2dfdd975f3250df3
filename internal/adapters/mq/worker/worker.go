// Package worker runs the batch-insert side of survey ingestion.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/careeriq/internal/adapters/mq/queue"
	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/pkg/logger"
	"github.com/okian/careeriq/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultBatchSize     = 1000
	defaultFlushInterval = 2 * time.Second
)

// Record abstracts what workers read off the queue.
type Record = queue.Record

// Inserter persists a batch of survey records.
type Inserter interface {
	InsertSurveyRecords(ctx context.Context, recs []model.SurveyRecord) error
}

// Queue defines how workers receive records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Record
}

// Worker accumulates records into batches and persists them.
type Worker struct {
	queue    Queue
	inserter Inserter
	name     string

	batchSize     int
	flushInterval time.Duration

	inserted atomic.Int64
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new batch-insert worker with configuration options.
func NewWorker(q Queue, inserter Inserter, opts ...Option) *Worker {
	w := &Worker{
		queue:         q,
		inserter:      inserter,
		name:          "worker",
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		done:          make(chan struct{}),
		logger:        logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run consumes records until the queue closes or ctx is canceled. The
// trailing partial batch is flushed before returning.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	batch := make([]model.SurveyRecord, 0, w.batchSize)
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	records := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background(), &batch)
			return
		case <-ticker.C:
			w.flush(ctx, &batch)
		case rec, ok := <-records:
			if !ok {
				w.flush(ctx, &batch)
				return
			}
			batch = append(batch, rec)
			if len(batch) >= w.batchSize {
				w.flush(ctx, &batch)
			}
		}
	}
}

// Inserted reports how many records this worker has persisted.
func (w *Worker) Inserted() int64 {
	return w.inserted.Load()
}

func (w *Worker) flush(ctx context.Context, batch *[]model.SurveyRecord) {
	if len(*batch) == 0 {
		return
	}

	start := time.Now()
	err := w.inserter.InsertSurveyRecords(ctx, *batch)
	metrics.RecordStoreQueryDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError("surveys.insert")
		w.logger.Error(ctx, "batch insert failed",
			logger.Int("size", len(*batch)),
			logger.Error(err),
		)
	} else {
		w.inserted.Add(int64(len(*batch)))
	}
	*batch = (*batch)[:0]
}

// Pool manages multiple ingestion workers over a shared queue.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a worker pool. A non-positive count defaults to the
// CPU count.
func NewPool(workerCount int, q Queue, inserter Inserter, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(q, inserter,
			append(opts, WithName("worker-"+strconv.Itoa(i)))...)
	}
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has drained or ctx expires.
func (p *Pool) Wait(ctx context.Context) error {
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			return fmt.Errorf("drain worker %d: %w", i, ctx.Err())
		}
	}
	return nil
}

// Inserted reports the total number of records persisted by the pool.
func (p *Pool) Inserted() int64 {
	var total int64
	for _, w := range p.workers {
		total += w.Inserted()
	}
	return total
}
