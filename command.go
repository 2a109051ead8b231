// FILE: lixenwraith/unilog/command.go
package unilog

import (
	"encoding/binary"
	"time"
)

// commandTag is the first payload byte of a command event
type commandTag byte

const (
	cmdSetEchoColour commandTag = iota + 1
	cmdSetSeverityStyle
	cmdSetLineEnding
	cmdDisableTask
	cmdEnableTask
	cmdDisableEcho
	cmdEnableEcho
	cmdSetPriority
	cmdRotateNow
)

// commandDataSize is the fixed payload size following each tag
var commandDataSize = map[commandTag]int{
	cmdSetEchoColour:    1,
	cmdSetSeverityStyle: 4,
	cmdSetLineEnding:    4,
	cmdDisableTask:      4,
	cmdEnableTask:       4,
	cmdDisableEcho:      0,
	cmdEnableEcho:       0,
	cmdSetPriority:      4,
	cmdRotateNow:        0,
}

func boolData(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func uint32Data(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// submitCommand queues a state change behind every event submitted before it
func (t *Target) submitCommand(tag commandTag, data []byte) bool {
	payload := make([]byte, 1, 1+len(data))
	payload[0] = byte(tag)
	payload = append(payload, data...)
	return t.submit(&Event{
		target:  t,
		stamp:   time.Now(),
		kind:    EventCommand,
		payload: payload,
		flags:   eventNoRotation,
	})
}

// SetEchoColour turns ANSI colouring of echoed lines on or off
func (t *Target) SetEchoColour(on bool) bool {
	return t.submitCommand(cmdSetEchoColour, boolData(on))
}

// SetSeverityStyle changes how severities are rendered
func (t *Target) SetSeverityStyle(style SeverityStyle) bool {
	return t.submitCommand(cmdSetSeverityStyle, uint32Data(uint32(style)))
}

// SetLineEnding changes the characters terminating each line
func (t *Target) SetLineEnding(le LineEnding) bool {
	return t.submitCommand(cmdSetLineEnding, uint32Data(uint32(le)))
}

// DisableProcessors disables every processor of the given task
func (t *Target) DisableProcessors(task Task) bool {
	return t.submitCommand(cmdDisableTask, uint32Data(uint32(task)))
}

// EnableProcessors re-enables every processor of the given task
func (t *Target) EnableProcessors(task Task) bool {
	return t.submitCommand(cmdEnableTask, uint32Data(uint32(task)))
}

// DisableEcho stops echo processors from writing
func (t *Target) DisableEcho() bool {
	return t.submitCommand(cmdDisableEcho, nil)
}

// EnableEcho lets echo processors write again
func (t *Target) EnableEcho() bool {
	return t.submitCommand(cmdEnableEcho, nil)
}

// applyCommand executes a command event on the pipeline
func (t *Target) applyCommand(evt *Event) {
	if len(evt.payload) == 0 {
		t.internalLog("empty command payload\n")
		return
	}
	tag := commandTag(evt.payload[0])
	data := evt.payload[1:]
	size, ok := commandDataSize[tag]
	if !ok || len(data) != size {
		t.internalLog("malformed command %d with %d data bytes\n", tag, len(data))
		return
	}

	var arg uint32
	if size == 4 {
		arg = binary.LittleEndian.Uint32(data)
	}

	switch tag {
	case cmdSetEchoColour:
		t.state.assign(flagColour, data[0] != 0)
	case cmdSetSeverityStyle:
		t.format.style = SeverityStyle(arg)
	case cmdSetLineEnding:
		t.format.ending = LineEnding(arg)
	case cmdDisableTask, cmdEnableTask:
		for _, p := range t.procs {
			if p.Task != Task(arg) {
				continue
			}
			if tag == cmdDisableTask {
				p.Options |= OptionDisabled
			} else {
				p.Options &^= OptionDisabled
			}
		}
	case cmdDisableEcho:
		t.state.set(flagEchoDisabled)
	case cmdEnableEcho:
		t.state.clear(flagEchoDisabled)
	case cmdSetPriority:
		if t.threaded() {
			t.applyPriority(ThreadPriority(arg))
		} else {
			t.priority = ThreadPriority(arg)
		}
	case cmdRotateNow:
		t.rotateAll(evt.stamp)
	}
	t.counters.commandsApplied.Add(1)
}
