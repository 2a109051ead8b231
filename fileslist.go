// FILE: lixenwraith/unilog/fileslist.go
package unilog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileEntry is one rotation candidate
type fileEntry struct {
	name   string // Base name inside the target directory
	size   int64
	active bool // The file the target writes to, possibly not yet created
	exists bool
}

// filesList holds the candidates of one epoch, newest first
type filesList struct {
	entries []*fileEntry
}

// window returns the entries at positions [ignore, maxFiles)
func (l *filesList) window(ignore, maxFiles int) []*fileEntry {
	if maxFiles > len(l.entries) {
		maxFiles = len(l.entries)
	}
	if ignore >= maxFiles {
		return nil
	}
	out := make([]*fileEntry, maxFiles-ignore)
	copy(out, l.entries[ignore:maxFiles])
	return out
}

func (l *filesList) prepend(e *fileEntry) {
	l.entries = append([]*fileEntry{e}, l.entries...)
}

// remove drops entries by identity
func (l *filesList) remove(gone map[*fileEntry]bool) {
	if len(gone) == 0 {
		return
	}
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !gone[e] {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

// names returns the entry names in list order
func (l *filesList) names() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.name
	}
	return out
}

// rotationEpoch caches the discovered files between rotators of the same event
type rotationEpoch struct {
	files *filesList
}

func (e *rotationEpoch) reset() {
	e.files = nil
}

// discoverFiles scans the directory for rotation candidates of the target and
// sorts them newest first. The active file is always present in the list.
func discoverFiles(dir, app string, p Postfix, activeName string) (*filesList, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	mask := candidateMask(app, p)
	list := &filesList{}
	haveActive := false
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		isActive := name == activeName
		if !isActive && !matchCandidate(mask, name, p) {
			continue
		}
		var size int64
		if info, err := de.Info(); err == nil {
			size = info.Size()
		}
		list.entries = append(list.entries, &fileEntry{name: name, size: size, active: isActive, exists: true})
		haveActive = haveActive || isActive
	}
	if !haveActive {
		list.entries = append(list.entries, &fileEntry{name: activeName, active: true})
	}

	sortEntries(list.entries, p)
	return list, nil
}

// sortEntries orders candidates newest first for the postfix's naming scheme
func sortEntries(entries []*fileEntry, p Postfix) {
	switch p.scheme() {
	case schemeDotNumber:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].active != entries[j].active {
				return entries[i].active
			}
			return dotNumberOf(entries[i].name) < dotNumberOf(entries[j].name)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].active != entries[j].active {
				return entries[i].active
			}
			return strings.TrimSuffix(entries[i].name, zstdSuffix) > strings.TrimSuffix(entries[j].name, zstdSuffix)
		})
	}
}

// fileExists reports whether path names an existing filesystem entry
func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// joinDir joins a base name to the target directory
func (t *Target) joinDir(name string) string {
	return filepath.Join(t.dir, name)
}
