// FILE: lixenwraith/unilog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/unilog"
	"github.com/lixenwraith/unilog/sanitizer"
	"github.com/valyala/fasthttp"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// oneLine keeps a library message on a single log line
var oneLine = sanitizer.New().Policy(sanitizer.PolicyOneLine)

// FastHTTPAdapter wraps a unilog target to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	logger           unilog.TextLogger
	defaultSeverity  unilog.Severity
	severityDetector func(string) unilog.Severity // Detects severity from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger unilog.TextLogger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:           logger,
		defaultSeverity:  unilog.SeverityInfo,
		severityDetector: DetectSeverity,
	}

	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultSeverity sets the severity used when detection finds nothing
func WithDefaultSeverity(sev unilog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultSeverity = sev
	}
}

// WithSeverityDetector sets a custom function to detect severity from message content
func WithSeverityDetector(detector func(string) unilog.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.severityDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	sev := a.defaultSeverity
	if a.severityDetector != nil {
		if detected := a.severityDetector(msg); detected != unilog.SeverityNone {
			sev = detected
		}
	}
	a.logger.LogText(sev, "fasthttp: "+oneLine.Sanitize(msg))
}

// DetectSeverity guesses a severity from message keywords; SeverityNone means no guess
func DetectSeverity(msg string) unilog.Severity {
	msgLower := strings.ToLower(msg)

	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return unilog.SeverityError
	}

	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return unilog.SeverityWarning
	}

	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return unilog.SeverityDebug
	}

	return unilog.SeverityNone
}
