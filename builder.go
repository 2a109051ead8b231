// FILE: lixenwraith/unilog/builder.go
package unilog

import (
	"io"
)

// Builder provides a fluent API for building targets.
// It wraps a Config plus the options Config cannot express.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new builder with default values
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Target with the accumulated configuration
func (b *Builder) Build() (*Target, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewTarget(b.cfg.Clone(), b.opts...)
}

// Config returns a copy of the configuration built so far
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Name sets the application name
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// RelativeTo sets the base of a relative directory: "cwd", "home", "exe" or "" for none
func (b *Builder) RelativeTo(base string) *Builder {
	b.cfg.RelativeTo = base
	return b
}

// Postfix sets the naming scheme
func (b *Builder) Postfix(p Postfix) *Builder {
	b.cfg.Postfix = p.String()
	return b
}

// PostfixString sets the naming scheme from its config name
func (b *Builder) PostfixString(postfix string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParsePostfix(postfix); err != nil {
		b.err = err
		return b
	}
	b.cfg.Postfix = postfix
	return b
}

// Mode sets the concurrency mode from its config name
func (b *Builder) Mode(mode string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseMode(mode); err != nil {
		b.err = err
		return b
	}
	b.cfg.Mode = mode
	return b
}

// TimestampFormat sets the time layout of the timestamp field
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// SeverityStyle sets the severity rendering from its config name
func (b *Builder) SeverityStyle(style string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseSeverityStyle(style); err != nil {
		b.err = err
		return b
	}
	b.cfg.SeverityStyle = style
	return b
}

// LineEnding sets the line ending from its config name
func (b *Builder) LineEnding(ending string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLineEnding(ending); err != nil {
		b.err = err
		return b
	}
	b.cfg.LineEnding = ending
	return b
}

// Colour sets echo colouring: "auto", "always" or "never"
func (b *Builder) Colour(mode string) *Builder {
	b.cfg.Colour = mode
	return b
}

// Sanitize enables hex-encoding of non-printable characters
func (b *Builder) Sanitize(enable bool) *Builder {
	b.cfg.Sanitize = enable
	return b
}

// EnableEcho mirrors lines to the echo writer
func (b *Builder) EnableEcho(enable bool) *Builder {
	b.cfg.EnableEcho = enable
	return b
}

// DisableFile disables file output entirely
func (b *Builder) DisableFile(disable bool) *Builder {
	b.cfg.DisableFile = disable
	return b
}

// FlushEveryEvents flushes after every n events; 0 flushes after each
func (b *Builder) FlushEveryEvents(n int64) *Builder {
	b.cfg.FlushEveryEvents = n
	return b
}

// RunOnStartup runs every processor on the first event
func (b *Builder) RunOnStartup(enable bool) *Builder {
	b.cfg.RunOnStartup = enable
	return b
}

// KeepUncompressed sets how many of the newest files stay uncompressed
func (b *Builder) KeepUncompressed(n int64) *Builder {
	b.cfg.KeepUncompressed = n
	return b
}

// KeepFiles sets how many of the newest files are kept
func (b *Builder) KeepFiles(n int64) *Builder {
	b.cfg.KeepFiles = n
	return b
}

// MaxFilesPerRun caps the candidates one rotation run considers
func (b *Builder) MaxFilesPerRun(n int64) *Builder {
	b.cfg.MaxFilesPerRun = n
	return b
}

// UseTrash moves old files to the trash instead of deleting them
func (b *Builder) UseTrash(enable bool) *Builder {
	b.cfg.UseTrash = enable
	return b
}

// ThreadPriority sets the logging goroutine's priority from its config name
func (b *Builder) ThreadPriority(priority string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseThreadPriority(priority); err != nil {
		b.err = err
		return b
	}
	b.cfg.ThreadPriority = priority
	return b
}

// InternalErrorsToStderr writes internal diagnostics to stderr
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Processors replaces the default pipeline
func (b *Builder) Processors(procs ...*Processor) *Builder {
	b.opts = append(b.opts, WithProcessors(procs...))
	return b
}

// OnError installs the error callback
func (b *Builder) OnError(cb ErrorCallback) *Builder {
	b.opts = append(b.opts, WithErrorCallback(cb))
	return b
}

// Trash replaces the move-to-trash primitive
func (b *Builder) Trash(fn func(path string) error) *Builder {
	b.opts = append(b.opts, WithTrash(fn))
	return b
}

// EchoWriter sends echoed lines to w
func (b *Builder) EchoWriter(w io.Writer) *Builder {
	b.opts = append(b.opts, WithEchoWriter(w))
	return b
}

// Example usage:
// target, err := unilog.NewBuilder().
//
//	Name("server").
//	Directory("/var/log/server").
//	Postfix(unilog.PostfixDotNumberDaily).
//	KeepFiles(14).
//	EnableEcho(true).
//	Build()
//
// if err == nil {
//
//	 defer target.Shutdown()
//	 target.Info("target initialized successfully")
//
// }
