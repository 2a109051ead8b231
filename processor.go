// FILE: lixenwraith/unilog/processor.go
package unilog

// EventHandler is the caller-supplied work of a custom processor.
// The return value is the processor's continuation signal.
type EventHandler interface {
	HandleEvent(evt *Event) bool
}

// HandlerFunc adapts a function to EventHandler
type HandlerFunc func(evt *Event) bool

// HandleEvent calls f(evt)
func (f HandlerFunc) HandleEvent(evt *Event) bool {
	return f(evt)
}

// Rotation configures a rotate processor
type Rotation struct {
	Action   RotationAction
	Ignore   int // Newest candidates left untouched
	MaxFiles int // Candidates considered, counted from the newest, ignored ones included

	processed uint64 // Files acted upon over the processor's lifetime
}

// Processor is one stage of a target's pipeline
type Processor struct {
	Task      Task
	Frequency Frequency
	Threshold uint64 // N for FrequencyEveryNEvents and FrequencyEveryNOctets
	Options   ProcessorOption

	Rotation *Rotation    // TaskRotate
	Handler  EventHandler // TaskCustom
	Other    *Target      // TaskRedirect, TaskFork

	counter uint64 // Events or octets since the last run
	value   int64  // Last calendar value a run happened at; 0 is unset
}

// NewEchoProcessor writes every event to the echo writer
func NewEchoProcessor() *Processor {
	return &Processor{Task: TaskEcho, Frequency: FrequencyAlways}
}

// NewUpdateFilenameProcessor advances the logfile name when the event's stamp moves on
func NewUpdateFilenameProcessor() *Processor {
	return &Processor{Task: TaskUpdateFilename, Frequency: FrequencyAlways}
}

// NewWriteProcessor appends every event to the logfile
func NewWriteProcessor() *Processor {
	return &Processor{Task: TaskWrite, Frequency: FrequencyAlways}
}

// NewFlushProcessor syncs the logfile; n is the event count for FrequencyEveryNEvents
// and the octet count for FrequencyEveryNOctets
func NewFlushProcessor(freq Frequency, n uint64) *Processor {
	return &Processor{Task: TaskFlush, Frequency: freq, Threshold: n}
}

// NewRotateProcessor runs the rotation engine once per calendar unit of the target's postfix
func NewRotateProcessor(action RotationAction, ignore, maxFiles int) *Processor {
	return &Processor{
		Task:      TaskRotate,
		Frequency: FrequencyAuto,
		Rotation:  &Rotation{Action: action, Ignore: ignore, MaxFiles: maxFiles},
	}
}

// NewCustomProcessor hands every event to h
func NewCustomProcessor(h EventHandler) *Processor {
	return &Processor{Task: TaskCustom, Frequency: FrequencyAlways, Handler: h}
}

// NewRedirectProcessor passes events to other and stops this pipeline
func NewRedirectProcessor(other *Target) *Processor {
	return &Processor{Task: TaskRedirect, Frequency: FrequencyAlways, Other: other}
}

// NewForkProcessor passes a copy of every event to other and continues
func NewForkProcessor(other *Target) *Processor {
	return &Processor{Task: TaskFork, Frequency: FrequencyAlways, Other: other}
}

// WithOptions sets option flags and returns p for chaining
func (p *Processor) WithOptions(opts ProcessorOption) *Processor {
	p.Options |= opts
	return p
}

// Disabled reports whether dispatch skips the processor
func (p *Processor) Disabled() bool {
	return p.Options&OptionDisabled != 0
}

// Processed returns how many files a rotate processor acted upon
func (p *Processor) Processed() uint64 {
	if p.Rotation == nil {
		return 0
	}
	return p.Rotation.processed
}

// validateProcessors checks a pipeline before a target accepts it
func validateProcessors(procs []*Processor) error {
	seenWrite := false
	for i, p := range procs {
		if p == nil {
			return fmtErrorf("processor %d is nil: %w", i, ErrProcessor)
		}
		switch p.Task {
		case TaskWrite:
			seenWrite = true
		case TaskFlush:
			if !seenWrite {
				return fmtErrorf("processor %d: %w", i, ErrNoWriter)
			}
		case TaskRotate:
			if p.Rotation == nil {
				return fmtErrorf("processor %d: rotate without rotation data: %w", i, ErrProcessor)
			}
			if p.Rotation.Ignore < 0 || p.Rotation.MaxFiles < 0 {
				return fmtErrorf("processor %d: negative rotation counts: %w", i, ErrProcessor)
			}
		case TaskCustom:
			if p.Handler == nil {
				return fmtErrorf("processor %d: custom without handler: %w", i, ErrProcessor)
			}
		case TaskRedirect, TaskFork:
			if p.Other == nil {
				return fmtErrorf("processor %d: redirect/fork without destination: %w", i, ErrProcessor)
			}
		}
		if (p.Frequency == FrequencyEveryNEvents || p.Frequency == FrequencyEveryNOctets) && p.Threshold == 0 {
			return fmtErrorf("processor %d: zero threshold: %w", i, ErrProcessor)
		}
	}
	return nil
}

// DefaultProcessors builds the pipeline described by cfg:
// echo, update-filename, rotators, write, flush
func DefaultProcessors(cfg *Config) ([]*Processor, error) {
	postfix, err := ParsePostfix(cfg.Postfix)
	if err != nil {
		return nil, err
	}

	var procs []*Processor
	if cfg.EnableEcho {
		procs = append(procs, NewEchoProcessor())
	}
	if cfg.DisableFile {
		return procs, nil
	}

	procs = append(procs, NewUpdateFilenameProcessor())

	maxFiles := int(cfg.MaxFilesPerRun)
	switch postfix.scheme() {
	case schemeLog:
		procs = append(procs, NewRotateProcessor(RotateRename, 0, 1))
	case schemeDotNumber:
		procs = append(procs, NewRotateProcessor(RotateRename, 0, maxFiles))
	}
	if postfix.scheme() != schemeNone {
		if cfg.KeepUncompressed > 0 {
			procs = append(procs, NewRotateProcessor(RotateCompress, int(cfg.KeepUncompressed), maxFiles))
		}
		if cfg.KeepFiles > 0 {
			action := RotateDelete
			if cfg.UseTrash {
				action = RotateTrash
			}
			procs = append(procs, NewRotateProcessor(action, int(cfg.KeepFiles), maxFiles))
		}
	}

	procs = append(procs, NewWriteProcessor())
	if cfg.FlushEveryEvents > 0 {
		procs = append(procs, NewFlushProcessor(FrequencyEveryNEvents, uint64(cfg.FlushEveryEvents)))
	} else {
		procs = append(procs, NewFlushProcessor(FrequencyAlways, 0))
	}
	return procs, nil
}
