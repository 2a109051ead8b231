// FILE: lixenwraith/unilog/interface.go
package unilog

import (
	"fmt"
	"time"
)

// TextLogger is the logging surface shared by Target and the package-level default
type TextLogger interface {
	LogText(sev Severity, text string) bool
	Logf(sev Severity, format string, args ...any) bool
}

var _ TextLogger = (*Target)(nil)

// Every method below returns false once shutdown has been initiated.

// LogText logs text at the current time
func (t *Target) LogText(sev Severity, text string) bool {
	return t.submit(newTextEvent(t, sev, text, time.Now(), 0))
}

// LogTextAt logs text with an explicit timestamp; naming and rotation follow the timestamp
func (t *Target) LogTextAt(sev Severity, text string, ts time.Time) bool {
	return t.submit(newTextEvent(t, sev, text, ts, 0))
}

// LogTextQuiet logs text without triggering rotation
func (t *Target) LogTextQuiet(sev Severity, text string) bool {
	return t.submit(newTextEvent(t, sev, text, time.Now(), eventNoRotation))
}

// EchoText sends text to the echo processors only
func (t *Target) EchoText(sev Severity, text string) bool {
	return t.submit(newTextEvent(t, sev, text, time.Now(), eventEchoOnly|eventNoRotation))
}

// Logf logs a formatted message
func (t *Target) Logf(sev Severity, format string, args ...any) bool {
	return t.LogText(sev, fmt.Sprintf(format, args...))
}

// LogHexDump logs data as a hex dump below a caption line
func (t *Target) LogHexDump(sev Severity, data []byte, caption string) bool {
	return t.submit(newHexDumpEvent(t, sev, data, caption, time.Now(), 0))
}

// LogHexDumpAt logs a hex dump with an explicit timestamp
func (t *Target) LogHexDumpAt(sev Severity, data []byte, caption string, ts time.Time) bool {
	return t.submit(newHexDumpEvent(t, sev, data, caption, ts, 0))
}

// LogHexDumpQuiet logs a hex dump without triggering rotation
func (t *Target) LogHexDumpQuiet(sev Severity, data []byte, caption string) bool {
	return t.submit(newHexDumpEvent(t, sev, data, caption, time.Now(), eventNoRotation))
}

// EchoHexDump sends a hex dump to the echo processors only
func (t *Target) EchoHexDump(sev Severity, data []byte, caption string) bool {
	return t.submit(newHexDumpEvent(t, sev, data, caption, time.Now(), eventEchoOnly|eventNoRotation))
}

// Debug logs args at debug severity
func (t *Target) Debug(args ...any) bool {
	return t.LogText(SeverityDebug, formatArgs(args))
}

// Info logs args at info severity
func (t *Target) Info(args ...any) bool {
	return t.LogText(SeverityInfo, formatArgs(args))
}

// Notice logs args at notice severity
func (t *Target) Notice(args ...any) bool {
	return t.LogText(SeverityNotice, formatArgs(args))
}

// Warn logs args at warning severity
func (t *Target) Warn(args ...any) bool {
	return t.LogText(SeverityWarning, formatArgs(args))
}

// Error logs args at error severity
func (t *Target) Error(args ...any) bool {
	return t.LogText(SeverityError, formatArgs(args))
}

// Critical logs args at critical severity
func (t *Target) Critical(args ...any) bool {
	return t.LogText(SeverityCritical, formatArgs(args))
}

// Message logs args without a severity field
func (t *Target) Message(args ...any) bool {
	return t.LogText(SeverityNone, formatArgs(args))
}

// Write implements io.Writer; each call is one event at message severity.
// A trailing newline is trimmed since the line ending is added on output.
func (t *Target) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
		if len(p) > 0 && p[len(p)-1] == '\r' {
			p = p[:len(p)-1]
		}
	}
	if !t.LogText(SeverityMessage, string(p)) {
		return 0, fmtErrorf("target '%s' is shut down", t.name)
	}
	return n, nil
}
