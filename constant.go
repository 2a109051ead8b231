// FILE: lixenwraith/unilog/constant.go
package unilog

import (
	"time"
)

// Severity is the severity of an event, rendered in front of the message text
type Severity int

const (
	SeverityNone Severity = iota // No severity text is written
	SeverityBlanks
	SeverityEmergency
	SeverityNotice
	SeverityInfo
	SeverityMessage
	SeverityDebug
	SeverityTrace
	SeverityDetail
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityFatal
)

// SeverityStyle selects how the severity is rendered
type SeverityStyle int

const (
	SeverityStyleChars3 SeverityStyle = iota // "WRN "
	SeverityStyleChars5                      // "WARN  "
	SeverityStyleChars9                      // "WARNING   "
	SeverityStyleChars3Tab                   // "WRN\t"
	SeverityStyleChars5Tab
	SeverityStyleChars9Tab
	SeverityStyleChars3Brackets // "[WRN] "
	SeverityStyleChars5Brackets
	SeverityStyleChars9Brackets
)

// LineEnding is appended to every line written or echoed
type LineEnding int

const (
	LineEndingDefault LineEnding = iota // LF, or CRLF on windows
	LineEndingLF
	LineEndingCRLF
	LineEndingCR
)

// RunMode is the concurrency model of a Target
type RunMode int

const (
	// ModeSingleThreaded runs the pipeline on the caller's goroutine without locking
	ModeSingleThreaded RunMode = iota
	// ModeSingleThreadedSeparateThread queues events for a dedicated logging goroutine
	ModeSingleThreadedSeparateThread
	// ModeMultiThreaded runs the pipeline on the caller's goroutine under the target lock
	ModeMultiThreaded
	// ModeMultiThreadedSeparateThread queues events from any goroutine for a dedicated logging goroutine
	ModeMultiThreadedSeparateThread
	// ModeMultiProcess is ModeMultiThreaded plus an advisory lock file shared between processes
	ModeMultiProcess
)

// Task is the kind of work a Processor performs
type Task int

const (
	TaskNoOp Task = iota
	TaskEcho
	TaskUpdateFilename
	TaskWrite
	TaskFlush
	TaskRotate
	TaskCustom
	TaskRedirect
	TaskFork
)

// Frequency decides how a Processor's threshold is evaluated
type Frequency int

const (
	FrequencyAlways Frequency = iota
	FrequencyEveryNEvents
	FrequencyEveryNOctets
	FrequencySecondChanged
	FrequencyMinuteChanged
	FrequencyHourChanged
	FrequencyDayChanged
	FrequencyWeekChanged
	FrequencyMonthChanged
	FrequencyYearChanged
	FrequencyAuto // Derived from the target's postfix
)

// ProcessorOption flags
type ProcessorOption uint8

const (
	OptionDisabled         ProcessorOption = 1 << iota // Skipped by dispatch
	OptionForceNext                                    // Continue with the next processor regardless of this one's result
	OptionRunOnceAtStartup                             // Run on the first event regardless of the threshold
)

// RotationAction is what a rotate processor does with each selected file
type RotationAction int

const (
	RotateRename RotationAction = iota
	RotateCompress
	RotateTrash
	RotateDelete
)

// ThreadPriority of the logging goroutine's OS thread
type ThreadPriority int

const (
	PriorityNormal ThreadPriority = iota
	PriorityIdle
	PriorityLowest
	PriorityBelowNormal
	PriorityAboveNormal
	PriorityHighest
	PriorityTimeCritical
)

// Filename parts
const (
	logExtension   = ".log"
	zstdSuffix     = ".zst"
	lockExtension  = ".lock"
	renameTimeForm = "20060102T150405"
)

// Timers
const (
	// Default time to wait for the logging goroutine to exit
	defaultShutdownTimeout = 5 * time.Second
)
