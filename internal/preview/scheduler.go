package preview

import "sync"

// Scheduler defers a callback to the next frame.
type Scheduler interface {
	// Schedule arranges for fn to run once. The returned cancel func
	// prevents fn from running if it has not run yet.
	Schedule(fn func()) (cancel func())
}

// FrameQueue is a Scheduler drained explicitly by the game loop.
// Callbacks scheduled during a Tick run on the following Tick.
type FrameQueue struct {
	mu      sync.Mutex
	pending []*frameTask
}

type frameTask struct {
	fn       func()
	canceled bool
}

// NewFrameQueue creates an empty FrameQueue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule implements Scheduler.
func (q *FrameQueue) Schedule(fn func()) func() {
	task := &frameTask{fn: fn}

	q.mu.Lock()
	q.pending = append(q.pending, task)
	q.mu.Unlock()

	return func() {
		q.mu.Lock()
		task.canceled = true
		q.mu.Unlock()
	}
}

// Tick runs every callback scheduled before the call, in order.
// It returns the number of callbacks that ran.
func (q *FrameQueue) Tick() int {
	q.mu.Lock()
	tasks := q.pending
	q.pending = nil
	q.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		q.mu.Lock()
		canceled := task.canceled
		q.mu.Unlock()
		if canceled {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next Tick.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, task := range q.pending {
		if !task.canceled {
			n++
		}
	}
	return n
}
