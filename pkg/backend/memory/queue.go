package memory

import "sync"

// queue runs callbacks on a dedicated goroutine in FIFO order.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []func()
	stopped bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// push enqueues fn. It never blocks and is a no-op after stop.
func (q *queue) push(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return
	}
	q.items = append(q.items, fn)
	q.cond.Signal()
}

// stop discards pending callbacks and ends the goroutine. A callback that is
// already running completes; stop does not wait for it.
func (q *queue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.stopped = true
	q.items = nil
	q.cond.Broadcast()
}

func (q *queue) run() {
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.stopped {
			q.cond.Wait()
		}
		if q.stopped {
			q.mu.Unlock()
			return
		}
		fn := q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
		q.mu.Unlock()

		fn()
	}
}
