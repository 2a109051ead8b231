// FILE: lixenwraith/unilog/logfile.go
package unilog

import (
	"os"
	"path/filepath"
)

// currentPath returns the logfile path for evt without changing any state
func (t *Target) currentPath(evt *Event) (path, stamp string) {
	stamp = t.postfix.Stamp(evt.stamp)
	if t.path == "" || stamp > t.stamp {
		return filepath.Join(t.dir, activeFileName(t.name, t.postfix, evt.stamp)), stamp
	}
	return t.path, t.stamp
}

// updateFilename advances the active logfile name when the event's stamp sorts later.
// Events with an older stamp keep writing to the current file.
func (t *Target) updateFilename(evt *Event) bool {
	path, stamp := t.currentPath(evt)
	if path != t.path {
		t.current.Store(&path)
	}
	t.path, t.stamp = path, stamp
	return true
}

// writeEvent appends the formatted event to the active logfile, opening or
// switching files as the name advances
func (t *Target) writeEvent(p *Processor, evt *Event) bool {
	if t.fileDisabled {
		return true
	}

	t.updateFilename(evt)
	if t.file != nil && t.filePath != t.path {
		t.closeFile()
	}
	if t.file == nil {
		f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			t.reportError(ErrorOpen, t.path, err, p, evt)
			return true
		}
		t.file = f
		t.filePath = t.path
	}

	buf := t.format.render(evt, false, false)
	_, err := t.file.Write(buf.B)
	releaseBuffer(buf)
	if err != nil {
		t.reportError(ErrorWrite, t.filePath, err, p, evt)
	}
	return true
}

// flushFile syncs the open logfile to disk
func (t *Target) flushFile(p *Processor, evt *Event) bool {
	if t.file == nil {
		return true
	}
	if err := t.file.Sync(); err != nil {
		t.reportError(ErrorFlush, t.filePath, err, p, evt)
	}
	return true
}

// closeFile closes the open logfile; the next write reopens by name
func (t *Target) closeFile() {
	if t.file == nil {
		return
	}
	if err := t.file.Close(); err != nil {
		t.internalLog("failed to close log file '%s': %v\n", t.filePath, err)
	}
	t.file = nil
	t.filePath = ""
}

// echoEvent writes the formatted event to the echo writer
func (t *Target) echoEvent(p *Processor, evt *Event) bool {
	if t.state.has(flagEchoDisabled) || t.echo == nil {
		return true
	}
	buf := t.format.render(evt, t.state.has(flagColour), true)
	_, err := t.echo.Write(buf.B)
	releaseBuffer(buf)
	if err != nil {
		t.reportError(ErrorWrite, "", err, p, evt)
	}
	return true
}

// CurrentFile returns the path of the logfile the next event is written to.
// Safe to call from any goroutine.
func (t *Target) CurrentFile() string {
	if p := t.current.Load(); p != nil {
		return *p
	}
	return ""
}
