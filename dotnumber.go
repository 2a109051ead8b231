// FILE: lixenwraith/unilog/dotnumber.go
package unilog

import (
	"strconv"
	"strings"
)

// dotNumber returns the numeric suffix of name ("app.log.7" -> 7)
// Names without a purely numeric last extension report false
func dotNumber(name string) (uint64, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return 0, false
	}
	suffix := name[idx+1:]
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IncrementDotNumber returns name with its dot-number suffix incremented.
// A name without suffix gets ".1"; a trailing .zst is preserved.
func IncrementDotNumber(name string) string {
	compressed := strings.HasSuffix(name, zstdSuffix)
	base := strings.TrimSuffix(name, zstdSuffix)

	var next string
	if n, ok := dotNumber(base); ok {
		idx := strings.LastIndexByte(base, '.')
		next = base[:idx+1] + strconv.FormatUint(n+1, 10)
	} else {
		next = base + ".1"
	}

	if compressed {
		next += zstdSuffix
	}
	return next
}

// dotNumberOf returns the sort key of a dot-number candidate; the active file is 0
func dotNumberOf(name string) uint64 {
	n, _ := dotNumber(strings.TrimSuffix(name, zstdSuffix))
	return n
}
