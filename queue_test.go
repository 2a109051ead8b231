// FILE: lixenwraith/unilog/queue_test.go
package unilog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemaphoreKeepsReleases(t *testing.T) {
	s := newSemaphore()
	s.release(3)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			s.acquire()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire blocked despite pending releases")
	}
}

func TestSemaphoreWakesWaiter(t *testing.T) {
	s := newSemaphore()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.acquire()
	}()

	time.Sleep(20 * time.Millisecond)
	s.release(1)

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}
}

func TestEventQueueOrder(t *testing.T) {
	var q eventQueue
	for i := 0; i < 5; i++ {
		q.push(newTextEvent(nil, SeverityInfo, string(rune('a'+i)), day(1), 0))
	}
	assert.Equal(t, 5, q.len())

	batch := q.drain()
	require.Len(t, batch, 5)
	for i, evt := range batch {
		assert.Equal(t, string(rune('a'+i)), evt.Text())
	}
	assert.Equal(t, 0, q.len())

	q.push(newTextEvent(nil, SeverityInfo, "z", day(1), 0))
	assert.Equal(t, 1, q.discard())
	assert.Empty(t, q.drain())
}
