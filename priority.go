// FILE: lixenwraith/unilog/priority.go
package unilog

// niceValue maps a ThreadPriority to a Unix nice value
func niceValue(p ThreadPriority) int {
	switch p {
	case PriorityIdle:
		return 19
	case PriorityLowest:
		return 10
	case PriorityBelowNormal:
		return 5
	case PriorityAboveNormal:
		return -5
	case PriorityHighest:
		return -10
	case PriorityTimeCritical:
		return -20
	}
	return 0
}

// SetThreadPriority changes the priority of the logging goroutine's OS thread.
// It is a command: it takes effect in queue order and does nothing in synchronous modes.
func (t *Target) SetThreadPriority(p ThreadPriority) bool {
	return t.submitCommand(cmdSetPriority, uint32Data(uint32(p)))
}
