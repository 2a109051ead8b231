// FILE: lixenwraith/unilog/priority_other.go
//go:build !linux

package unilog

// applyPriority only records the priority where per-thread nice values are unavailable
func (t *Target) applyPriority(p ThreadPriority) {
	t.priority = p
}
