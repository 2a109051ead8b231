// FILE: lixenwraith/unilog/priority_linux.go
//go:build linux

package unilog

import (
	"golang.org/x/sys/unix"
)

// applyPriority sets the nice value of the calling OS thread.
// On Linux PRIO_PROCESS with a thread id targets that thread only.
func (t *Target) applyPriority(p ThreadPriority) {
	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), niceValue(p)); err != nil {
		t.reportError(ErrorPriority, "", err, nil, nil)
		return
	}
	t.priority = p
}
