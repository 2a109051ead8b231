// FILE: lixenwraith/unilog/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/unilog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps a unilog target to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       unilog.TextLogger
	prefix       string
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger unilog.TextLogger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		prefix: "gnet: ",
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithGnetPrefix replaces the "gnet: " message prefix
func WithGnetPrefix(prefix string) GnetOption {
	return func(a *GnetAdapter) {
		a.prefix = prefix
	}
}

func (a *GnetAdapter) logf(sev unilog.Severity, format string, args ...any) {
	a.logger.LogText(sev, a.prefix+oneLine.Sanitize(fmt.Sprintf(format, args...)))
}

// Debugf logs at debug severity
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logf(unilog.SeverityDebug, format, args...)
}

// Infof logs at info severity
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logf(unilog.SeverityInfo, format, args...)
}

// Warnf logs at warning severity
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logf(unilog.SeverityWarning, format, args...)
}

// Errorf logs at error severity
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logf(unilog.SeverityError, format, args...)
}

// Fatalf logs at fatal severity, drains the target and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.LogText(unilog.SeverityFatal, a.prefix+oneLine.Sanitize(msg))

	// Ensure queued events reach the file before exit
	if s, ok := a.logger.(interface{ Shutdown(...time.Duration) error }); ok {
		_ = s.Shutdown(time.Second)
	}

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
