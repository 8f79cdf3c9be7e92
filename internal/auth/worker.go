package auth

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

// Worker runs submitted jobs one at a time, in submission order, on a
// single background goroutine.
type Worker struct {
	mu     sync.RWMutex
	closed bool
	jobs   chan func()
	done   chan struct{}
	log    logging.Logger
}

func NewWorker(log logging.Logger) *Worker {
	w := &Worker{
		jobs: make(chan func(), 16),
		done: make(chan struct{}),
		log:  log,
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for job := range w.jobs {
		w.safeRun(job)
	}
}

func (w *Worker) safeRun(job func()) {
	defer func() {
		if p := recover(); p != nil {
			w.log.Error(context.Background(), "auth job panicked", "panic", p)
		}
	}()
	job()
}

// Submit queues job. It fails with ErrWorkerClosed after Close.
func (w *Worker) Submit(job func()) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWorkerClosed
	}
	w.jobs <- job
	return nil
}

// Close waits for queued jobs to finish and stops the goroutine. It is safe
// to call more than once.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	<-w.done
}
