// FILE: lixenwraith/unilog/errors.go
package unilog

import (
	"errors"
	"fmt"
)

// Configuration errors
var (
	ErrRelativePath = errors.New("absolute path required")
	ErrNoWriter     = errors.New("flush processor requires an earlier write processor")
	ErrProcessor    = errors.New("invalid processor")
)

// ErrorKind classifies the sticky error of a Target
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorOpen
	ErrorWrite
	ErrorFlush
	ErrorRename
	ErrorCompress
	ErrorTrash
	ErrorDelete
	ErrorDiscover
	ErrorPriority
	ErrorLock
)

var errorKindNames = [...]string{
	ErrorNone:     "none",
	ErrorOpen:     "open",
	ErrorWrite:    "write",
	ErrorFlush:    "flush",
	ErrorRename:   "rename",
	ErrorCompress: "compress",
	ErrorTrash:    "trash",
	ErrorDelete:   "delete",
	ErrorDiscover: "discover",
	ErrorPriority: "priority",
	ErrorLock:     "lock",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// TargetError pairs an error kind with the underlying OS error
type TargetError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *TargetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unilog: %s failed for '%s': %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("unilog: %s failed: %v", e.Kind, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// ErrorAction is returned by an ErrorCallback to steer the pipeline
type ErrorAction int

const (
	// ErrorActionIgnore continues as if nothing happened
	ErrorActionIgnore ErrorAction = iota
	// ErrorActionNextProcessor abandons the rest of the failing processor's work for this event
	ErrorActionNextProcessor
	// ErrorActionNextEvent abandons the remaining processors for this event
	ErrorActionNextEvent
	// ErrorActionShutdown initiates shutdown; queued events are still processed
	ErrorActionShutdown
	// ErrorActionCancel initiates shutdown and discards queued events
	ErrorActionCancel
)

// ErrorCallback is invoked on the pipeline goroutine whenever a processor fails
type ErrorCallback func(err *TargetError, p *Processor, evt *Event) ErrorAction

// reportError records the sticky error and consults the callback.
// It returns true if the failing processor should stop its remaining work.
func (t *Target) reportError(kind ErrorKind, path string, err error, p *Processor, evt *Event) bool {
	te := &TargetError{Kind: kind, Path: path, Err: err}
	t.lastErr.Store(te)
	t.counters.errors.Add(1)
	t.internalLog("%v\n", te)

	if t.onError == nil {
		return false
	}

	switch t.onError(te, p, evt) {
	case ErrorActionNextProcessor:
		return true
	case ErrorActionNextEvent:
		if evt != nil {
			evt.flags |= eventIgnoreRemaining
		}
		return true
	case ErrorActionShutdown:
		t.requestShutdown(false)
		return true
	case ErrorActionCancel:
		t.requestShutdown(true)
		return true
	}
	return false
}

// LastError returns the most recent processor error, or nil
func (t *Target) LastError() *TargetError {
	return t.lastErr.Load()
}
