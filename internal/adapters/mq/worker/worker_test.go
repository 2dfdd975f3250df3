package worker_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/careeriq/internal/adapters/mq/queue"
	"github.com/okian/careeriq/internal/adapters/mq/worker"
	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// recordingInserter captures every batch it receives.
type recordingInserter struct {
	mu      sync.Mutex
	batches [][]model.SurveyRecord
	err     error
}

func (r *recordingInserter) InsertSurveyRecords(_ context.Context, recs []model.SurveyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	batch := append([]model.SurveyRecord(nil), recs...)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recordingInserter) batchSizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	sizes := make([]int, 0, len(r.batches))
	for _, b := range r.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}

func (r *recordingInserter) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func fill(ctx context.Context, q *queue.InMemoryQueue, n int) {
	for i := 0; i < n; i++ {
		So(q.Enqueue(ctx, queue.Record{Country: "Germany", Salary: float64(1 + i)}), ShouldBeTrue)
	}
}

func TestWorker(t *testing.T) {
	Convey("Given a worker over a shared queue", t, func() {
		ctx := context.Background()
		inserter := &recordingInserter{}

		Convey("When the queue holds more than one batch", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(100))
			fill(ctx, q, 7)
			So(q.Close(), ShouldBeNil)

			w := worker.NewWorker(q, inserter, worker.WithBatchSize(3))
			w.Run(ctx)

			Convey("Then full batches flush at the batch size and the tail flushes on close", func() {
				So(inserter.batchSizes(), ShouldResemble, []int{3, 3, 1})
				So(w.Inserted(), ShouldEqual, 7)
			})
		})

		Convey("When a partial batch outlives the flush interval", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(100))
			fill(ctx, q, 2)

			w := worker.NewWorker(q, inserter,
				worker.WithBatchSize(100),
				worker.WithFlushInterval(20*time.Millisecond),
			)
			runCtx, cancel := context.WithCancel(ctx)
			go w.Run(runCtx)

			Convey("Then the ticker flushes it without waiting for close", func() {
				So(func() int {
					deadline := time.Now().Add(2 * time.Second)
					for time.Now().Before(deadline) {
						if inserter.total() == 2 {
							break
						}
						time.Sleep(5 * time.Millisecond)
					}
					return inserter.total()
				}(), ShouldEqual, 2)
				cancel()
			})
		})

		Convey("When the store rejects a batch", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(100))
			fill(ctx, q, 4)
			So(q.Close(), ShouldBeNil)

			inserter.err = errors.New("connection reset")
			w := worker.NewWorker(q, inserter, worker.WithBatchSize(2))
			w.Run(ctx)

			Convey("Then failed batches are not counted as inserted", func() {
				So(w.Inserted(), ShouldEqual, 0)
			})
		})

		Convey("When the context is cancelled mid-run", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(100))
			fill(ctx, q, 2)

			w := worker.NewWorker(q, inserter, worker.WithBatchSize(100))
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan struct{})
			go func() {
				w.Run(runCtx)
				close(done)
			}()

			// Give the worker a moment to drain the queue into its
			// batch before pulling the plug.
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) && q.Len(ctx) > 0 {
				time.Sleep(5 * time.Millisecond)
			}
			cancel()
			<-done

			Convey("Then the accumulated batch is flushed on the way out", func() {
				So(w.Inserted(), ShouldEqual, 2)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers over one queue", t, func() {
		ctx := context.Background()
		inserter := &recordingInserter{}
		q := queue.NewInMemoryQueue(queue.WithCapacity(1000))

		Convey("When records are spread across the pool", func() {
			for i := 0; i < 250; i++ {
				So(q.Enqueue(ctx, queue.Record{Salary: float64(i + 1)}), ShouldBeTrue)
			}
			So(q.Close(), ShouldBeNil)

			pool := worker.NewPool(4, q, inserter, worker.WithBatchSize(50))
			pool.Start(ctx)

			drainCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			Convey("Then every record is persisted exactly once", func() {
				So(pool.Wait(drainCtx), ShouldBeNil)
				So(pool.Inserted(), ShouldEqual, 250)
				So(inserter.total(), ShouldEqual, 250)
			})
		})

		Convey("When a worker never drains", func() {
			// The queue stays open, so workers keep waiting.
			pool := worker.NewPool(1, q, inserter)
			pool.Start(ctx)

			drainCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			Convey("Then Wait gives up with the context error", func() {
				err := pool.Wait(drainCtx)
				So(err, ShouldNotBeNil)
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})

			So(q.Close(), ShouldBeNil)
		})
	})
}
