// FILE: lixenwraith/unilog/target.go
package unilog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Target is a logfile plus the pipeline of processors writing to it
type Target struct {
	name    string // Application name, the filename base
	dir     string // Absolute log directory
	postfix Postfix
	mode    RunMode
	procs   []*Processor

	// Naming and file state, owned by whoever runs the pipeline
	path     string // Active logfile path
	stamp    string // Stamp embedded in path
	file     *os.File
	filePath string
	prevTime time.Time
	current  atomic.Pointer[string] // Copy of path for readers outside the pipeline

	fileDisabled bool
	format       lineFormat
	echo         io.Writer
	priority     ThreadPriority
	trash        func(path string) error
	epoch        rotationEpoch
	internalRuns int

	// Queue state, guarded by mu; mu also serialises synchronous multi-threaded dispatch
	mu      sync.Mutex
	queue   eventQueue
	pending int // Semaphore releases deferred while paused
	sem     *semaphore
	done    chan struct{}

	procLock *flock.Flock // ModeMultiProcess only

	onError          ErrorCallback
	lastErr          atomic.Pointer[TargetError]
	internalToStderr bool
	stopCalled       atomic.Bool
	state            targetState
	counters         counters
}

// Option customises a Target beyond what Config can express
type Option func(*Target)

// WithProcessors replaces the default pipeline
func WithProcessors(procs ...*Processor) Option {
	return func(t *Target) {
		t.procs = procs
	}
}

// WithErrorCallback installs the callback consulted on processor failures
func WithErrorCallback(cb ErrorCallback) Option {
	return func(t *Target) {
		t.onError = cb
	}
}

// WithTrash replaces the move-to-trash primitive
func WithTrash(fn func(path string) error) Option {
	return func(t *Target) {
		t.trash = fn
	}
}

// WithEchoWriter sends echoed lines to w instead of stdout
func WithEchoWriter(w io.Writer) Option {
	return func(t *Target) {
		t.echo = w
	}
}

// NewTarget creates a Target from a validated configuration.
// Targets in a separate-thread mode start their logging goroutine immediately.
func NewTarget(cfg *Config, opts ...Option) (*Target, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	dir, err := resolveDirectory(cfg.Directory, cfg.RelativeTo)
	if err != nil {
		return nil, err
	}

	// Parse errors are caught by validate
	postfix, _ := ParsePostfix(cfg.Postfix)
	mode, _ := ParseMode(cfg.Mode)
	style, _ := ParseSeverityStyle(cfg.SeverityStyle)
	ending, _ := ParseLineEnding(cfg.LineEnding)
	priority, _ := ParseThreadPriority(cfg.ThreadPriority)

	t := &Target{
		name:         cfg.Name,
		dir:          dir,
		postfix:      postfix,
		mode:         mode,
		fileDisabled: cfg.DisableFile,
		format: lineFormat{
			timestampFormat: cfg.TimestampFormat,
			style:           style,
			ending:          ending,
			sanitize:        cfg.Sanitize,
		},
		priority:         priority,
		trash:            moveToTrash,
		internalToStderr: cfg.InternalErrorsToStderr,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.procs == nil {
		procs, err := DefaultProcessors(cfg)
		if err != nil {
			return nil, err
		}
		t.procs = procs
	}
	if err := validateProcessors(t.procs); err != nil {
		return nil, err
	}

	if t.echo == nil {
		t.echo = colorable.NewColorableStdout()
	}
	switch cfg.Colour {
	case "always":
		t.state.set(flagColour)
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			t.state.set(flagColour)
		}
	}
	if cfg.RunOnStartup {
		t.state.set(flagRunOnStartup)
	}

	if !t.fileDisabled {
		if err := os.MkdirAll(t.dir, 0755); err != nil {
			return nil, fmtErrorf("failed to create log directory '%s': %w", t.dir, err)
		}
	}

	if t.mode == ModeMultiProcess {
		t.procLock = flock.New(filepath.Join(t.dir, t.name+lockExtension))
	}

	if t.threaded() {
		t.sem = newSemaphore()
		t.done = make(chan struct{})
		t.state.set(flagThreadRunning)
		go t.processEvents()
	}

	return t, nil
}

// Name returns the application name
func (t *Target) Name() string { return t.name }

// Dir returns the absolute log directory
func (t *Target) Dir() string { return t.dir }

// Mode returns the concurrency mode
func (t *Target) Mode() RunMode { return t.mode }

// Postfix returns the naming scheme
func (t *Target) Postfix() Postfix { return t.postfix }

// Processors returns the pipeline
func (t *Target) Processors() []*Processor { return t.procs }

// threaded reports whether a dedicated logging goroutine owns the pipeline
func (t *Target) threaded() bool {
	return t.mode == ModeSingleThreadedSeparateThread || t.mode == ModeMultiThreadedSeparateThread
}

// Pause holds back queued events until Resume; enqueueing continues
func (t *Target) Pause() {
	t.mu.Lock()
	t.state.set(flagPaused)
	t.mu.Unlock()
}

// Resume releases every event queued while paused
func (t *Target) Resume() {
	t.mu.Lock()
	t.state.clear(flagPaused)
	n := t.pending
	t.pending = 0
	t.mu.Unlock()
	t.release(n)
}

// Shutdown stops accepting events, processes the queued ones and closes the logfile.
// If no timeout is provided, a default of 5 seconds is used.
func (t *Target) Shutdown(timeout ...time.Duration) error {
	return t.stop(false, timeout...)
}

// Cancel stops accepting events, discards the queued ones and closes the logfile
func (t *Target) Cancel(timeout ...time.Duration) error {
	return t.stop(true, timeout...)
}

func (t *Target) stop(cancel bool, timeout ...time.Duration) error {
	if !t.stopCalled.CompareAndSwap(false, true) {
		return nil
	}

	effectiveTimeout := defaultShutdownTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}

	if t.threaded() {
		t.requestShutdown(cancel)
		select {
		case <-t.done:
		case <-time.After(effectiveTimeout):
			return fmtErrorf("logging goroutine did not exit within timeout (%v)", effectiveTimeout)
		}
		return t.finish()
	}

	t.state.set(flagShutdownInitiated)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finish()
}

// finish closes the logfile; the caller owns the pipeline
func (t *Target) finish() error {
	var finalErr error
	if t.file != nil {
		if err := t.file.Sync(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to sync log file '%s' during shutdown: %w", t.filePath, err))
		}
		if err := t.file.Close(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s' during shutdown: %w", t.filePath, err))
		}
		t.file = nil
		t.filePath = ""
	}
	if t.procLock != nil {
		if err := t.procLock.Close(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to release lock file: %w", err))
		}
	}
	t.state.set(flagShutdownComplete)
	return finalErr
}

// requestShutdown marks the target as shutting down and, in separate-thread modes,
// queues the event that stops the logging goroutine. Safe to call from the pipeline.
func (t *Target) requestShutdown(cancel bool) {
	t.state.set(flagShutdownInitiated)
	if !t.threaded() {
		return
	}

	t.mu.Lock()
	if cancel {
		t.state.set(flagCancelled)
		n := t.queue.discard()
		t.counters.eventsDiscarded.Add(uint64(n))
	}
	t.queue.push(&Event{target: t, stamp: time.Now(), flags: eventInternal | eventNoRotation | eventShutdown})
	// Shutdown overrides pause so the goroutine can drain and exit
	t.state.clear(flagPaused)
	n := t.pending + 1
	t.pending = 0
	t.mu.Unlock()

	t.release(n)
}

// internalLog handles writing internal diagnostics to stderr, if enabled
func (t *Target) internalLog(format string, args ...any) {
	if !t.internalToStderr {
		return
	}
	fmt.Fprintf(os.Stderr, "unilog: "+format, args...)
}
