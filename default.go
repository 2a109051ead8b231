// FILE: lixenwraith/unilog/default.go
package unilog

import (
	"sync/atomic"
	"time"
)

// Package-level target used by the functions below
var defaultTarget atomic.Pointer[Target]

// Init creates the default target; an existing default target is shut down first
func Init(cfg *Config, opts ...Option) error {
	t, err := NewTarget(cfg, opts...)
	if err != nil {
		return err
	}
	if old := defaultTarget.Swap(t); old != nil {
		return old.Shutdown()
	}
	return nil
}

// InitWithDefaults creates the default target from the built-in defaults and "key=value" overrides
func InitWithDefaults(overrides ...string) error {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverride(overrides...); err != nil {
		return err
	}
	return Init(cfg)
}

// Default returns the default target, or nil before Init
func Default() *Target {
	return defaultTarget.Load()
}

// Shutdown shuts down the default target
func Shutdown(timeout ...time.Duration) error {
	t := defaultTarget.Swap(nil)
	if t == nil {
		return nil
	}
	return t.Shutdown(timeout...)
}

// LogText logs text to the default target
func LogText(sev Severity, text string) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.LogText(sev, text)
	}
	return false
}

// Logf logs a formatted message to the default target
func Logf(sev Severity, format string, args ...any) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.Logf(sev, format, args...)
	}
	return false
}

// Debug logs a message at debug severity
func Debug(args ...any) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.Debug(args...)
	}
	return false
}

// Info logs a message at info severity
func Info(args ...any) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.Info(args...)
	}
	return false
}

// Warn logs a message at warning severity
func Warn(args ...any) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.Warn(args...)
	}
	return false
}

// Error logs a message at error severity
func Error(args ...any) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.Error(args...)
	}
	return false
}

// HexDump logs data as a hex dump to the default target
func HexDump(sev Severity, data []byte, caption string) bool {
	if t := defaultTarget.Load(); t != nil {
		return t.LogHexDump(sev, data, caption)
	}
	return false
}
