// Package queue provides the bounded hand-off between the survey CSV
// parser and the batch-insert workers during ingestion.
package queue

import (
	"context"
	"sync"

	"github.com/okian/careeriq/internal/domain/model"
)

// Default queue configuration constants.
const (
	defaultCapacity = 10000
)

// Record is the payload type flowing through the queue.
type Record = model.SurveyRecord

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, r Record) bool

	// Dequeue returns a channel that receives records as they become
	// available. The channel is closed when the queue is closed and
	// drained.
	Dequeue(ctx context.Context) <-chan Record

	// Len returns the current number of queued records.
	Len(ctx context.Context) int

	// Close stops accepting new records. Queued records remain
	// readable until drained.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records  chan Record
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.records = make(chan Record, q.capacity)
	return q
}

// Enqueue adds a record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.records <- r:
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns the receive side of the queue. Workers range over it
// directly; it closes once the queue is closed and drained.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Record {
	return q.records
}

// Len returns the current number of queued records.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.records)
}

// Close stops accepting new records.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.records)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
