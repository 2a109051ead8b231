// FILE: lixenwraith/unilog/utility.go
package unilog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "unilog: ") {
		format = "unilog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// ParseMode converts a mode string to a RunMode
func ParseMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "":
		return ModeSingleThreaded, nil
	case "single_thread":
		return ModeSingleThreadedSeparateThread, nil
	case "multi":
		return ModeMultiThreaded, nil
	case "multi_thread":
		return ModeMultiThreadedSeparateThread, nil
	case "multi_process":
		return ModeMultiProcess, nil
	default:
		return 0, fmtErrorf("invalid mode: '%s' (use single, single_thread, multi, multi_thread, multi_process)", s)
	}
}

// ParseSeverityStyle converts a style string to a SeverityStyle
func ParseSeverityStyle(s string) (SeverityStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chars3", "":
		return SeverityStyleChars3, nil
	case "chars5":
		return SeverityStyleChars5, nil
	case "chars9":
		return SeverityStyleChars9, nil
	case "chars3_tab":
		return SeverityStyleChars3Tab, nil
	case "chars5_tab":
		return SeverityStyleChars5Tab, nil
	case "chars9_tab":
		return SeverityStyleChars9Tab, nil
	case "chars3_brackets":
		return SeverityStyleChars3Brackets, nil
	case "chars5_brackets":
		return SeverityStyleChars5Brackets, nil
	case "chars9_brackets":
		return SeverityStyleChars9Brackets, nil
	default:
		return 0, fmtErrorf("invalid severity_style: '%s'", s)
	}
}

// ParseLineEnding converts a line ending string to a LineEnding
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return LineEndingDefault, nil
	case "lf":
		return LineEndingLF, nil
	case "crlf":
		return LineEndingCRLF, nil
	case "cr":
		return LineEndingCR, nil
	default:
		return 0, fmtErrorf("invalid line_ending: '%s' (use default, lf, crlf, cr)", s)
	}
}

// ParseThreadPriority converts a priority string to a ThreadPriority
func ParseThreadPriority(s string) (ThreadPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return PriorityNormal, nil
	case "idle":
		return PriorityIdle, nil
	case "lowest":
		return PriorityLowest, nil
	case "below_normal":
		return PriorityBelowNormal, nil
	case "above_normal":
		return PriorityAboveNormal, nil
	case "highest":
		return PriorityHighest, nil
	case "time_critical":
		return PriorityTimeCritical, nil
	default:
		return 0, fmtErrorf("invalid thread_priority: '%s'", s)
	}
}

// resolveDirectory makes dir absolute against the configured base
func resolveDirectory(dir, relativeTo string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	var base string
	switch strings.ToLower(relativeTo) {
	case "":
		return "", fmtErrorf("directory '%s' is relative and relative_to is not set: %w", dir, ErrRelativePath)
	case "cwd":
		wd, err := os.Getwd()
		if err != nil {
			return "", fmtErrorf("failed to get working directory: %w", err)
		}
		base = wd
	case "home":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmtErrorf("failed to get home directory: %w", err)
		}
		base = home
	case "exe":
		exe, err := os.Executable()
		if err != nil {
			return "", fmtErrorf("failed to get executable path: %w", err)
		}
		base = filepath.Dir(exe)
	default:
		return "", fmtErrorf("invalid relative_to: '%s' (use cwd, home, exe)", relativeTo)
	}
	return filepath.Join(base, dir), nil
}
