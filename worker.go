// FILE: lixenwraith/unilog/worker.go
package unilog

import (
	"runtime"
)

// processEvents is the logging goroutine of separate-thread targets
func (t *Target) processEvents() {
	defer close(t.done)
	defer t.state.clear(flagThreadRunning)

	// Priority is a property of the OS thread, so keep this goroutine on one
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if t.priority != PriorityNormal {
		t.applyPriority(t.priority)
	}

	for {
		t.sem.acquire()
		batch := t.dequeueAll()

		stop := false
		for _, evt := range batch {
			if evt.flags&eventShutdown != 0 {
				stop = true
				continue
			}
			if t.state.has(flagCancelled) {
				t.counters.eventsDiscarded.Add(1)
				continue
			}
			t.processEvent(evt)
		}
		if stop {
			return
		}
	}
}
