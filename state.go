// FILE: lixenwraith/unilog/state.go
package unilog

import (
	"sync/atomic"
)

// targetFlag is a single bit of a target's mutable state
type targetFlag uint32

const (
	flagPaused targetFlag = 1 << iota
	flagShutdownInitiated
	flagShutdownComplete
	flagRunOnStartup
	flagEchoDisabled
	flagColour
	flagThreadRunning
	flagCancelled
)

// targetState holds the mutable flags of a Target; safe for concurrent use
type targetState struct {
	bits atomic.Uint32
}

func (s *targetState) has(f targetFlag) bool {
	return targetFlag(s.bits.Load())&f != 0
}

func (s *targetState) set(f targetFlag) {
	for {
		old := s.bits.Load()
		if s.bits.CompareAndSwap(old, old|uint32(f)) {
			return
		}
	}
}

func (s *targetState) clear(f targetFlag) {
	for {
		old := s.bits.Load()
		if s.bits.CompareAndSwap(old, old&^uint32(f)) {
			return
		}
	}
}

// setOnce sets f and reports whether it was previously clear
func (s *targetState) setOnce(f targetFlag) bool {
	for {
		old := s.bits.Load()
		if old&uint32(f) != 0 {
			return false
		}
		if s.bits.CompareAndSwap(old, old|uint32(f)) {
			return true
		}
	}
}

func (s *targetState) assign(f targetFlag, on bool) {
	if on {
		s.set(f)
	} else {
		s.clear(f)
	}
}

// Paused reports whether queued events are held back
func (t *Target) Paused() bool { return t.state.has(flagPaused) }

// ShutdownInitiated reports whether the target stopped accepting events
func (t *Target) ShutdownInitiated() bool { return t.state.has(flagShutdownInitiated) }

// ShutdownComplete reports whether the target released its logfile for good
func (t *Target) ShutdownComplete() bool { return t.state.has(flagShutdownComplete) }

// EchoEnabled reports whether echo processors are active
func (t *Target) EchoEnabled() bool { return !t.state.has(flagEchoDisabled) }

// ColourEnabled reports whether echoed lines are wrapped in ANSI colours
func (t *Target) ColourEnabled() bool { return t.state.has(flagColour) }

// Stats is a snapshot of a target's counters
type Stats struct {
	EventsProcessed   uint64
	EventsDiscarded   uint64
	CommandsApplied   uint64
	Rotations         uint64
	FilesRenamed      uint64
	FilesCompressed   uint64
	FilesRemoved      uint64
	SemaphoreReleases uint64
	Errors            uint64
}

// counters are updated from the pipeline and read from anywhere
type counters struct {
	eventsProcessed   atomic.Uint64
	eventsDiscarded   atomic.Uint64
	commandsApplied   atomic.Uint64
	rotations         atomic.Uint64
	filesRenamed      atomic.Uint64
	filesCompressed   atomic.Uint64
	filesRemoved      atomic.Uint64
	semaphoreReleases atomic.Uint64
	errors            atomic.Uint64
}

// Stats returns the current counters
func (t *Target) Stats() Stats {
	c := &t.counters
	return Stats{
		EventsProcessed:   c.eventsProcessed.Load(),
		EventsDiscarded:   c.eventsDiscarded.Load(),
		CommandsApplied:   c.commandsApplied.Load(),
		Rotations:         c.rotations.Load(),
		FilesRenamed:      c.filesRenamed.Load(),
		FilesCompressed:   c.filesCompressed.Load(),
		FilesRemoved:      c.filesRemoved.Load(),
		SemaphoreReleases: c.semaphoreReleases.Load(),
		Errors:            c.errors.Load(),
	}
}
