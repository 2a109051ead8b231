// FILE: lixenwraith/unilog/event.go
package unilog

import (
	"encoding/binary"
	"math"
	"time"
)

// EventKind is the payload type of an Event
type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventHexDump8  // Caption length prefix is 1 byte
	EventHexDump16 // Caption length prefix is 2 bytes
	EventHexDump32 // Caption length prefix is 4 bytes
	EventHexDump64 // Caption length prefix is 8 bytes
)

// eventFlags control how the pipeline treats an event
type eventFlags uint16

const (
	eventEchoOnly eventFlags = 1 << iota
	eventNoRotation
	eventInternal
	eventIgnoreRemaining
	eventShutdown
)

// Event is one unit of log work
type Event struct {
	target   *Target
	stamp    time.Time
	severity Severity
	kind     EventKind
	payload  []byte
	flags    eventFlags
}

// Timestamp returns the event's creation time
func (e *Event) Timestamp() time.Time { return e.stamp }

// Severity returns the event's severity
func (e *Event) Severity() Severity { return e.severity }

// Kind returns the event's payload type
func (e *Event) Kind() EventKind { return e.kind }

// Payload returns the raw payload; for hex dumps it carries the caption length prefix
func (e *Event) Payload() []byte { return e.payload }

// Target returns the target the event belongs to
func (e *Event) Target() *Target { return e.target }

// Text returns the text of a text event, or the caption of a hex dump
func (e *Event) Text() string {
	switch e.kind {
	case EventText:
		return string(e.payload)
	case EventHexDump8, EventHexDump16, EventHexDump32, EventHexDump64:
		caption, _, _ := decodeHexDump(e.kind, e.payload)
		return string(caption)
	}
	return ""
}

// EchoOnly reports whether the event bypasses every processor except echo
func (e *Event) EchoOnly() bool { return e.flags&eventEchoOnly != 0 }

// NoRotation reports whether rotate processors skip the event
func (e *Event) NoRotation() bool { return e.flags&eventNoRotation != 0 }

// Internal reports whether the event was generated by the engine itself
func (e *Event) Internal() bool { return e.flags&eventInternal != 0 }

// size is the octet count used by octet thresholds
func (e *Event) size() uint64 {
	return uint64(len(e.payload))
}

// externallyVisible events start a new rotation epoch
func (e *Event) externallyVisible() bool {
	return e.flags&(eventInternal|eventNoRotation) == 0
}

func newTextEvent(t *Target, sev Severity, text string, ts time.Time, flags eventFlags) *Event {
	return &Event{
		target:   t,
		stamp:    ts,
		severity: sev,
		kind:     EventText,
		payload:  []byte(text),
		flags:    flags,
	}
}

func newHexDumpEvent(t *Target, sev Severity, data []byte, caption string, ts time.Time, flags eventFlags) *Event {
	kind, payload := encodeHexDump([]byte(caption), data)
	return &Event{
		target:   t,
		stamp:    ts,
		severity: sev,
		kind:     kind,
		payload:  payload,
		flags:    flags,
	}
}

// cloneFor copies the event for submission to another target
func (e *Event) cloneFor(t *Target) *Event {
	c := &Event{
		target:   t,
		stamp:    e.stamp,
		severity: e.severity,
		kind:     e.kind,
		payload:  make([]byte, len(e.payload)),
		flags:    e.flags &^ (eventIgnoreRemaining | eventShutdown),
	}
	copy(c.payload, e.payload)
	return c
}

// encodeHexDump picks the narrowest caption length prefix and builds the payload
func encodeHexDump(caption, data []byte) (EventKind, []byte) {
	n := uint64(len(caption))
	var kind EventKind
	var width int
	switch {
	case n <= math.MaxUint8:
		kind, width = EventHexDump8, 1
	case n <= math.MaxUint16:
		kind, width = EventHexDump16, 2
	case n <= math.MaxUint32:
		kind, width = EventHexDump32, 4
	default:
		kind, width = EventHexDump64, 8
	}

	payload := make([]byte, width, width+len(caption)+len(data))
	switch width {
	case 1:
		payload[0] = byte(n)
	case 2:
		binary.LittleEndian.PutUint16(payload, uint16(n))
	case 4:
		binary.LittleEndian.PutUint32(payload, uint32(n))
	default:
		binary.LittleEndian.PutUint64(payload, n)
	}
	payload = append(payload, caption...)
	payload = append(payload, data...)
	return kind, payload
}

// decodeHexDump splits a hex dump payload into caption and data
func decodeHexDump(kind EventKind, payload []byte) (caption, data []byte, ok bool) {
	var width int
	switch kind {
	case EventHexDump8:
		width = 1
	case EventHexDump16:
		width = 2
	case EventHexDump32:
		width = 4
	case EventHexDump64:
		width = 8
	default:
		return nil, nil, false
	}
	if len(payload) < width {
		return nil, nil, false
	}

	var n uint64
	switch width {
	case 1:
		n = uint64(payload[0])
	case 2:
		n = uint64(binary.LittleEndian.Uint16(payload))
	case 4:
		n = uint64(binary.LittleEndian.Uint32(payload))
	default:
		n = binary.LittleEndian.Uint64(payload)
	}
	rest := payload[width:]
	if n > uint64(len(rest)) {
		return nil, nil, false
	}
	return rest[:n], rest[n:], true
}
