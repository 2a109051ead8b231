// FILE: lixenwraith/unilog/rotation.go
package unilog

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// rotate runs the rotation engine for a rotate processor
func (t *Target) rotate(p *Processor, evt *Event) bool {
	if evt.NoRotation() || t.postfix.scheme() == schemeNone {
		return true
	}

	list, ok := t.candidates(p, evt)
	if !ok {
		return true
	}
	t.counters.rotations.Add(1)

	r := p.Rotation
	selected := list.window(r.Ignore, r.MaxFiles)
	if len(selected) == 0 {
		return true
	}

	var n int
	switch r.Action {
	case RotateRename:
		n = t.renameFiles(p, evt, list, selected)
	case RotateCompress:
		n = t.compressFiles(p, evt, selected)
	case RotateTrash, RotateDelete:
		n = t.removeFiles(p, evt, list, selected)
	}
	r.processed += uint64(n)
	return true
}

// candidates returns the epoch's file list, discovering it on first use
func (t *Target) candidates(p *Processor, evt *Event) (*filesList, bool) {
	if t.epoch.files != nil {
		return t.epoch.files, true
	}
	activePath, _ := t.currentPath(evt)
	list, err := discoverFiles(t.dir, t.name, t.postfix, filepath.Base(activePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		t.reportError(ErrorDiscover, t.dir, err, p, evt)
		return nil, false
	}
	t.epoch.files = list
	return list, true
}

// rotationFailed records a failure and logs it through the pipeline without rotating.
// Returns true if the processor should stop.
func (t *Target) rotationFailed(kind ErrorKind, path string, err error, p *Processor, evt *Event) bool {
	stop := t.reportError(kind, path, err, p, evt)
	t.logInternal(evt, SeverityError, "%s of '%s' failed: %v", kind, filepath.Base(path), err)
	return stop
}

// renameNoClobber renames src to dst, refusing to replace an existing dst
func renameNoClobber(src, dst string) error {
	if fileExists(dst) {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EEXIST}
	}
	return os.Rename(src, dst)
}

// renameFiles applies the rename action of the postfix's naming scheme
func (t *Target) renameFiles(p *Processor, evt *Event, list *filesList, selected []*fileEntry) int {
	switch t.postfix.scheme() {
	case schemeDate:
		return t.renameDated(p, evt, selected)
	case schemeLog:
		return t.renameLog(p, evt, list, selected)
	case schemeDotNumber:
		return t.renameDotNumber(p, evt, list)
	}
	return 0
}

// renameDated appends the rotation time to closed date-stamped files:
// app_2024-01-01.log becomes app_2024-01-01_20240102T000000.log
func (t *Target) renameDated(p *Processor, evt *Event, selected []*fileEntry) int {
	n := 0
	suffix := "_" + evt.stamp.Format(renameTimeForm)
	for _, e := range selected {
		if e.active || !e.exists {
			continue
		}
		compressed := strings.HasSuffix(e.name, zstdSuffix)
		base := strings.TrimSuffix(strings.TrimSuffix(e.name, zstdSuffix), logExtension)
		newName := base + suffix + logExtension
		if compressed {
			newName += zstdSuffix
		}

		src := t.joinDir(e.name)
		if err := renameNoClobber(src, t.joinDir(newName)); err != nil {
			if t.rotationFailed(ErrorRename, src, err, p, evt) {
				break
			}
			continue
		}
		e.name = newName
		t.counters.filesRenamed.Add(1)
		n++
	}
	return n
}

// capturedStamp is the period the active file's content belongs to
func (t *Target) capturedStamp(path string) string {
	if !t.prevTime.IsZero() {
		return t.postfix.Stamp(t.prevTime)
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return t.postfix.Stamp(info.ModTime())
}

// renameLog moves app.log aside as app_<stamp>.log once its period is over
func (t *Target) renameLog(p *Processor, evt *Event, list *filesList, selected []*fileEntry) int {
	for _, e := range selected {
		if !e.active || !e.exists {
			continue
		}
		src := t.joinDir(e.name)
		stamp := t.capturedStamp(src)
		if stamp == "" || stamp == t.postfix.Stamp(evt.stamp) {
			return 0
		}

		newName := rotatedFileName(t.name, stamp)
		if t.filePath == src {
			t.closeFile()
		}
		if err := renameNoClobber(src, t.joinDir(newName)); err != nil {
			t.rotationFailed(ErrorRename, src, err, p, evt)
			return 0
		}
		e.name = newName
		e.active = false
		list.prepend(&fileEntry{name: filepath.Base(src), active: true})
		t.counters.filesRenamed.Add(1)
		return 1
	}
	return 0
}

// renameDotNumber shifts app.log -> app.log.1 -> app.log.2 ..., oldest first.
// The whole numbered chain past the ignored entries moves, max_files does not cap it.
func (t *Target) renameDotNumber(p *Processor, evt *Event, list *filesList) int {
	selected := list.window(p.Rotation.Ignore, len(list.entries))

	// Nothing moves while the active file still belongs to the current period
	for _, e := range selected {
		if e.active && e.exists {
			stamp := t.capturedStamp(t.joinDir(e.name))
			if stamp == "" || stamp == t.postfix.Stamp(evt.stamp) {
				return 0
			}
		}
	}

	n := 0
	var activeName string
	for i := len(selected) - 1; i >= 0; i-- {
		e := selected[i]
		if !e.exists {
			continue
		}
		src := t.joinDir(e.name)
		newName := IncrementDotNumber(e.name)
		if e.active && t.filePath == src {
			t.closeFile()
		}
		if err := renameNoClobber(src, t.joinDir(newName)); err != nil {
			if t.rotationFailed(ErrorRename, src, err, p, evt) {
				break
			}
			continue
		}
		if e.active {
			activeName = e.name
			e.active = false
		}
		e.name = newName
		t.counters.filesRenamed.Add(1)
		n++
	}
	if activeName != "" {
		list.prepend(&fileEntry{name: activeName, active: true})
	}
	return n
}

// compressFiles zstd-compresses every selected closed file
func (t *Target) compressFiles(p *Processor, evt *Event, selected []*fileEntry) int {
	n := 0
	for _, e := range selected {
		if e.active || !e.exists || strings.HasSuffix(e.name, zstdSuffix) {
			continue
		}
		src := t.joinDir(e.name)
		if src == t.filePath {
			continue
		}
		size, err := t.compressFile(src)
		if err != nil {
			if t.rotationFailed(ErrorCompress, src, err, p, evt) {
				break
			}
			continue
		}
		e.name += zstdSuffix
		e.size = size
		t.counters.filesCompressed.Add(1)
		n++
	}
	return n
}

// removeFiles trashes or deletes every selected closed file
func (t *Target) removeFiles(p *Processor, evt *Event, list *filesList, selected []*fileEntry) int {
	kind := ErrorDelete
	if p.Rotation.Action == RotateTrash {
		kind = ErrorTrash
	}

	gone := make(map[*fileEntry]bool)
	for _, e := range selected {
		if e.active || !e.exists {
			continue
		}
		path := t.joinDir(e.name)
		if path == t.filePath {
			continue
		}
		var err error
		if kind == ErrorTrash {
			err = t.trash(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			if t.rotationFailed(kind, path, err, p, evt) {
				break
			}
			continue
		}
		gone[e] = true
		t.counters.filesRemoved.Add(1)
	}
	list.remove(gone)
	return len(gone)
}

// RotateNow runs every enabled rotate processor against the current time,
// regardless of thresholds. It goes through the normal dispatch path.
func (t *Target) RotateNow() bool {
	return t.submitCommand(cmdRotateNow, nil)
}

// rotateAll is the pipeline side of RotateNow
func (t *Target) rotateAll(ts time.Time) {
	evt := &Event{target: t, stamp: ts, kind: EventText}
	t.epoch.reset()
	for _, p := range t.procs {
		if p.Task != TaskRotate || p.Disabled() {
			continue
		}
		t.rotate(p, evt)
		if evt.flags&eventIgnoreRemaining != 0 {
			return
		}
	}
}
