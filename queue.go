// FILE: lixenwraith/unilog/queue.go
package unilog

import (
	"sync"
)

// eventQueue is a FIFO of pending events, guarded by the target's mutex
type eventQueue struct {
	events []*Event
}

func (q *eventQueue) push(evt *Event) {
	q.events = append(q.events, evt)
}

// drain removes and returns every queued event in arrival order
func (q *eventQueue) drain() []*Event {
	batch := q.events
	q.events = nil
	return batch
}

// discard drops every queued event and returns how many were dropped
func (q *eventQueue) discard() int {
	n := len(q.events)
	q.events = nil
	return n
}

func (q *eventQueue) len() int {
	return len(q.events)
}

// semaphore is a counting semaphore; releases are never lost
type semaphore struct {
	mu    sync.Mutex
	count int
	wake  chan struct{}
}

func newSemaphore() *semaphore {
	return &semaphore{wake: make(chan struct{}, 1)}
}

func (s *semaphore) release(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.count += n
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// acquire blocks until the count is positive, then decrements it
func (s *semaphore) acquire() {
	for {
		s.mu.Lock()
		if s.count > 0 {
			s.count--
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		<-s.wake
	}
}

// release signals the logging goroutine n times
func (t *Target) release(n int) {
	if n <= 0 || t.sem == nil {
		return
	}
	t.counters.semaphoreReleases.Add(uint64(n))
	t.sem.release(n)
}

// enqueue appends evt to the queue and signals the logging goroutine unless paused.
// Returns false once shutdown has been initiated.
func (t *Target) enqueue(evt *Event) bool {
	t.mu.Lock()
	if t.state.has(flagShutdownInitiated) {
		t.mu.Unlock()
		return false
	}
	t.queue.push(evt)
	signal := !t.state.has(flagPaused)
	if !signal {
		t.pending++
	}
	t.mu.Unlock()

	if signal {
		t.release(1)
	}
	return true
}

// dequeueAll takes the whole queue under the lock
func (t *Target) dequeueAll() []*Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queue.drain()
}

// QueueLength returns the number of events waiting for the logging goroutine
func (t *Target) QueueLength() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queue.len()
}
