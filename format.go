// FILE: lixenwraith/unilog/format.go
package unilog

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/lixenwraith/unilog/sanitizer"
	"github.com/valyala/bytebufferpool"
)

// Default layout of the timestamp field
const defaultTimestampFormat = "2006-01-02 15:04:05.000"

// ANSI sequences used for echo colouring
const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiBoldRed   = "\x1b[1;31m"
	ansiYellow    = "\x1b[33m"
	ansiCyan      = "\x1b[36m"
	ansiGray      = "\x1b[90m"
	ansiWhiteOnRd = "\x1b[1;37;41m"
)

var severityColours = map[Severity]string{
	SeverityEmergency: ansiBoldRed,
	SeverityNotice:    ansiCyan,
	SeverityDebug:     ansiGray,
	SeverityTrace:     ansiGray,
	SeverityDetail:    ansiGray,
	SeverityWarning:   ansiYellow,
	SeverityError:     ansiRed,
	SeverityCritical:  ansiBoldRed,
	SeverityFatal:     ansiWhiteOnRd,
}

// severityNames holds the fixed-width names per width: 3, 5, 9
var severityNames = [3][SeverityFatal + 1]string{
	{"", "   ", "EMG", "NOT", "INF", "MSG", "DBG", "TRC", "DET", "WRN", "ERR", "CRI", "FTL"},
	{"", "     ", "EMRGY", "NOTE ", "INFO ", "MESSG", "DEBUG", "TRACE", "DETAI", "WARN ", "ERROR", "CRIT ", "FATAL"},
	{"", "         ", "EMERGENCY", "NOTICE   ", "INFO     ", "MESSAGE  ", "DEBUG    ", "TRACE    ", "DETAIL   ", "WARNING  ", "ERROR    ", "CRITICAL ", "FATAL    "},
}

// lineFormat renders events as text lines; owned by the pipeline
type lineFormat struct {
	timestampFormat string
	style           SeverityStyle
	ending          LineEnding
	sanitize        bool
}

var (
	txtSanitizer  = sanitizer.New().Policy(sanitizer.PolicyTxt)
	termSanitizer = sanitizer.New().Policy(sanitizer.PolicyTerm)
)

// SeverityText returns the rendered severity field including its separator
func SeverityText(sev Severity, style SeverityStyle) string {
	if sev <= SeverityNone || sev > SeverityFatal {
		return ""
	}
	width := int(style) % 3
	name := severityNames[width][sev]
	switch {
	case style >= SeverityStyleChars3Brackets:
		return "[" + name + "] "
	case style >= SeverityStyleChars3Tab:
		return name + "\t"
	default:
		return name + " "
	}
}

// endingBytes returns the characters terminating each line
func (le LineEnding) endingBytes() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	}
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// render formats evt into a pooled buffer; the caller releases it.
// Terminal output never carries ESC from the message itself.
func (f *lineFormat) render(evt *Event, colour, terminal bool) *bytebufferpool.ByteBuffer {
	buf := bytebufferpool.Get()

	switch evt.kind {
	case EventHexDump8, EventHexDump16, EventHexDump32, EventHexDump64:
		caption, data, ok := decodeHexDump(evt.kind, evt.payload)
		if !ok {
			f.appendLine(buf, evt, []byte("<malformed hex dump>"), colour, terminal)
			return buf
		}
		f.appendLine(buf, evt, caption, colour, terminal)
		f.appendHexDump(buf, data)
	default:
		f.appendLine(buf, evt, evt.payload, colour, terminal)
	}
	return buf
}

// appendLine writes "<timestamp> <severity><message><ending>"
func (f *lineFormat) appendLine(buf *bytebufferpool.ByteBuffer, evt *Event, msg []byte, colour, terminal bool) {
	code := ""
	if colour {
		code = severityColours[evt.severity]
	}
	if code != "" {
		buf.B = append(buf.B, code...)
	}

	layout := f.timestampFormat
	if layout == "" {
		layout = defaultTimestampFormat
	}
	buf.B = evt.stamp.AppendFormat(buf.B, layout)
	buf.B = append(buf.B, ' ')
	buf.B = append(buf.B, SeverityText(evt.severity, f.style)...)

	switch {
	case f.sanitize:
		buf.B = txtSanitizer.Append(buf.B, string(msg))
	case terminal:
		buf.B = termSanitizer.Append(buf.B, string(msg))
	default:
		buf.B = append(buf.B, msg...)
	}

	if code != "" {
		buf.B = append(buf.B, ansiReset...)
	}
	buf.B = append(buf.B, f.ending.endingBytes()...)
}

// appendHexDump writes data in hex.Dump layout, one line per 16 bytes
func (f *lineFormat) appendHexDump(buf *bytebufferpool.ByteBuffer, data []byte) {
	if len(data) == 0 {
		return
	}
	ending := f.ending.endingBytes()
	dump := strings.TrimSuffix(hex.Dump(data), "\n")
	for _, line := range strings.Split(dump, "\n") {
		buf.B = append(buf.B, line...)
		buf.B = append(buf.B, ending...)
	}
}

func releaseBuffer(buf *bytebufferpool.ByteBuffer) {
	bytebufferpool.Put(buf)
}

// formatArgs joins args with spaces the way the convenience methods render them
func formatArgs(args []any) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, arg := range args {
		if i > 0 {
			buf.B = append(buf.B, ' ')
		}
		buf.B = appendValue(buf.B, arg)
	}
	return buf.String()
}

// appendValue converts any value to its text representation.
// Types without a natural text form are dumped by spew.
func appendValue(dst []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(dst, val...)
	case int:
		return strconv.AppendInt(dst, int64(val), 10)
	case int32:
		return strconv.AppendInt(dst, int64(val), 10)
	case int64:
		return strconv.AppendInt(dst, val, 10)
	case uint:
		return strconv.AppendUint(dst, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(dst, val, 10)
	case float32:
		return strconv.AppendFloat(dst, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(dst, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(dst, val)
	case nil:
		return append(dst, "nil"...)
	case time.Time:
		return val.AppendFormat(dst, time.RFC3339Nano)
	case time.Duration:
		return append(dst, val.String()...)
	case error:
		return append(dst, val.Error()...)
	case fmt.Stringer:
		return append(dst, val.String()...)
	case []byte:
		return hex.AppendEncode(dst, val)
	default:
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, val)
		// Single line keeps the logfile line-oriented
		return append(dst, strings.Join(strings.Fields(b.String()), " ")...)
	}
}
