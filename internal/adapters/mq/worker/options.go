// Package worker runs the batch-insert side of survey ingestion.
package worker

import (
	"time"

	"github.com/okian/careeriq/pkg/logger"
)

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithBatchSize sets how many records accumulate before an insert.
func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// WithFlushInterval bounds how long a partial batch may wait.
func WithFlushInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.flushInterval = d
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}
