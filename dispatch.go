// FILE: lixenwraith/unilog/dispatch.go
package unilog

import (
	"fmt"
	"time"
)

// submit hands evt to the target according to its run mode.
// Returns false if the target no longer accepts events.
func (t *Target) submit(evt *Event) bool {
	if t.state.has(flagShutdownInitiated) {
		return false
	}

	switch t.mode {
	case ModeSingleThreadedSeparateThread, ModeMultiThreadedSeparateThread:
		return t.enqueue(evt)

	case ModeMultiThreaded:
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.state.has(flagShutdownComplete) {
			return false
		}
		t.processEvent(evt)

	case ModeMultiProcess:
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.state.has(flagShutdownComplete) {
			return false
		}
		if err := t.procLock.Lock(); err != nil {
			t.reportError(ErrorLock, t.procLock.Path(), err, nil, evt)
			return true
		}
		t.processEvent(evt)
		if err := t.procLock.Unlock(); err != nil {
			t.reportError(ErrorLock, t.procLock.Path(), err, nil, evt)
		}

	default:
		t.processEvent(evt)
	}
	return true
}

// processEvent runs one event through the pipeline; the caller owns the pipeline
func (t *Target) processEvent(evt *Event) {
	if evt.kind == EventCommand {
		t.applyCommand(evt)
		return
	}

	if evt.externallyVisible() {
		t.epoch.reset()
	}

	t.runProcessors(evt)

	if !evt.Internal() {
		t.counters.eventsProcessed.Add(1)
		// Quiet lines stay with the period of the file they landed in
		if !evt.NoRotation() && evt.stamp.After(t.prevTime) {
			t.prevTime = evt.stamp
		}
		t.state.clear(flagRunOnStartup)
	}
}

// runProcessors walks the pipeline in order. A processor that did not run
// counts as successful for the continuation rule.
func (t *Target) runProcessors(evt *Event) {
	for _, p := range t.procs {
		if p.Disabled() {
			continue
		}
		if evt.EchoOnly() && p.Task != TaskEcho {
			continue
		}
		// Events that cannot rotate leave the rotation threshold untouched
		if p.Task == TaskRotate && evt.NoRotation() {
			continue
		}

		proceed := true
		if t.shouldRun(p, evt) {
			proceed = t.runTask(p, evt)
		}

		if evt.EchoOnly() {
			return
		}
		if evt.flags&eventIgnoreRemaining != 0 {
			return
		}
		if proceed || p.Options&OptionForceNext != 0 || t.state.has(flagRunOnStartup) {
			continue
		}
		return
	}
}

func (t *Target) runTask(p *Processor, evt *Event) bool {
	switch p.Task {
	case TaskEcho:
		return t.echoEvent(p, evt)
	case TaskUpdateFilename:
		return t.updateFilename(evt)
	case TaskWrite:
		return t.writeEvent(p, evt)
	case TaskFlush:
		return t.flushFile(p, evt)
	case TaskRotate:
		return t.rotate(p, evt)
	case TaskCustom:
		return p.Handler.HandleEvent(evt)
	case TaskRedirect:
		p.Other.submit(evt.cloneFor(p.Other))
		return false
	case TaskFork:
		p.Other.submit(evt.cloneFor(p.Other))
		return true
	}
	return true
}

// logInternal runs a diagnostic event through the pipeline from inside a processor.
// The event carries the trigger's timestamp so it lands in the same logfile.
func (t *Target) logInternal(trigger *Event, sev Severity, format string, args ...any) {
	if t.internalRuns > 0 {
		return
	}
	t.internalRuns++
	defer func() { t.internalRuns-- }()

	ts := time.Now()
	if trigger != nil {
		ts = trigger.stamp
	}
	evt := newTextEvent(t, sev, fmt.Sprintf(format, args...), ts, eventInternal|eventNoRotation)
	t.runProcessors(evt)
}
