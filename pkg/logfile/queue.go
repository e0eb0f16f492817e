package logfile

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Queue appends lines to one file from a single writer goroutine.
//
// Enqueue never blocks on I/O. The writer drains everything pending, joins it
// with "\n" and appends it in one write, so lines land in enqueue order and a
// burst costs one syscall. A failed write drops that batch, is reported to the
// OnError hook and is not retried; later batches are still attempted.
type Queue struct {
	path    string
	open    Opener
	onError func(error)

	mu       sync.Mutex
	pending  []string
	enqueued uint64
	handled  uint64
	waiters  []waiter
	stopped  bool

	signal chan struct{}
	stop   chan struct{}
	done   chan struct{}
	closed atomic.Bool

	// owned by the writer goroutine
	w        io.WriteCloser
	closeErr error

	written atomic.Uint64
	dropped atomic.Uint64
}

type waiter struct {
	target uint64
	ch     chan struct{}
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithOnError sets the callback for write failures. It runs on the writer
// goroutine and must not enqueue into the same Queue.
func WithOnError(fn func(error)) QueueOption {
	return func(q *Queue) {
		q.onError = fn
	}
}

// WithOpener replaces AppendOpener.
func WithOpener(open Opener) QueueOption {
	return func(q *Queue) {
		if open != nil {
			q.open = open
		}
	}
}

// WithMaxSize caps the file at mb megabytes using SizeCappedOpener.
// Zero or less keeps a single uncapped file.
func WithMaxSize(mb int) QueueOption {
	return func(q *Queue) {
		if mb > 0 {
			q.open = SizeCappedOpener(mb)
		}
	}
}

// NewQueue starts the writer goroutine for path. The file is opened on the
// first write. Close must be called to release it.
func NewQueue(path string, opts ...QueueOption) *Queue {
	q := &Queue{
		path:   path,
		open:   AppendOpener,
		signal: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Path returns the destination file.
func (q *Queue) Path() string {
	return q.path
}

// Written returns the number of lines appended so far.
func (q *Queue) Written() uint64 {
	return q.written.Load()
}

// Dropped returns the number of lines lost to write failures.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Enqueue schedules line for appending. It is a no-op once Close was called.
func (q *Queue) Enqueue(line string) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, line)
	q.enqueued++
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Flush waits until every line enqueued before the call has been written or
// dropped.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.handled >= q.enqueued {
		q.mu.Unlock()
		return nil
	}
	w := waiter{target: q.enqueued, ch: make(chan struct{})}
	q.waiters = append(q.waiters, w)
	q.mu.Unlock()

	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake, drains pending lines, closes the file and stops the
// writer goroutine. A second call returns ErrClosed.
func (q *Queue) Close(ctx context.Context) error {
	if !q.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	close(q.stop)

	select {
	case <-q.done:
		return q.closeErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		select {
		case <-q.signal:
			q.drain()
		case <-q.stop:
			q.drain()
			if q.w != nil {
				q.closeErr = q.w.Close()
			}
			return
		}
	}
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		seq := q.enqueued
		q.mu.Unlock()

		if len(batch) == 0 {
			return
		}

		q.write(batch)

		q.mu.Lock()
		q.handled = seq
		kept := q.waiters[:0]
		for _, w := range q.waiters {
			if w.target <= seq {
				close(w.ch)
				continue
			}
			kept = append(kept, w)
		}
		q.waiters = kept
		q.mu.Unlock()
	}
}

func (q *Queue) write(batch []string) {
	if q.w == nil {
		w, err := q.open(q.path)
		if err != nil {
			q.fail(batch, err)
			return
		}
		q.w = w
	}

	data := strings.Join(batch, "\n") + "\n"
	if _, err := io.WriteString(q.w, data); err != nil {
		q.fail(batch, err)
		return
	}
	q.written.Add(uint64(len(batch)))
}

func (q *Queue) fail(batch []string, err error) {
	q.dropped.Add(uint64(len(batch)))
	if q.onError != nil {
		q.onError(fmt.Errorf("%w: %d lines to %s: %w", ErrWriteFailed, len(batch), q.path, err))
	}
}
