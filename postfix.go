// FILE: lixenwraith/unilog/postfix.go
package unilog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Postfix is the naming scheme of a target's logfiles
type Postfix int

const (
	PostfixNone Postfix = iota // <app>.log, never rotated by name

	// <app>_<stamp>.log, a new file per calendar unit
	PostfixMinute
	PostfixMinuteT
	PostfixHour
	PostfixHourT
	PostfixDay
	PostfixWeek
	PostfixMonth
	PostfixYear

	// <app>.log is always current, rotated copies are <app>_<stamp>.log
	PostfixLogMinute
	PostfixLogMinuteT
	PostfixLogHour
	PostfixLogHourT
	PostfixLogDay
	PostfixLogWeek
	PostfixLogMonth
	PostfixLogYear

	// <app>.log is always current, rotated copies are <app>.log.1, <app>.log.2, ...
	PostfixDotNumberMinutely
	PostfixDotNumberHourly
	PostfixDotNumberDaily
	PostfixDotNumberWeekly
	PostfixDotNumberMonthly
	PostfixDotNumberYearly
)

// namingScheme groups postfixes by how the active file and rotated copies are named
type namingScheme int

const (
	schemeNone namingScheme = iota
	schemeDate
	schemeLog
	schemeDotNumber
)

// postfixInfo holds the table driven properties of a postfix
type postfixInfo struct {
	name   string
	scheme namingScheme
	unit   Frequency
	layout string // time layout of the stamp; empty for week
	mask   string // wildcard mask matching any stamp
}

var postfixTable = map[Postfix]postfixInfo{
	PostfixNone:    {name: "none", scheme: schemeNone, unit: FrequencyAlways},
	PostfixMinute:  {name: "minute", scheme: schemeDate, unit: FrequencyMinuteChanged, layout: "2006-01-02 15_04", mask: "????-??-?? ??_??"},
	PostfixMinuteT: {name: "minute_t", scheme: schemeDate, unit: FrequencyMinuteChanged, layout: "2006-01-02T15_04", mask: "????-??-??T??_??"},
	PostfixHour:    {name: "hour", scheme: schemeDate, unit: FrequencyHourChanged, layout: "2006-01-02 15", mask: "????-??-?? ??"},
	PostfixHourT:   {name: "hour_t", scheme: schemeDate, unit: FrequencyHourChanged, layout: "2006-01-02T15", mask: "????-??-??T??"},
	PostfixDay:     {name: "day", scheme: schemeDate, unit: FrequencyDayChanged, layout: "2006-01-02", mask: "????-??-??"},
	PostfixWeek:    {name: "week", scheme: schemeDate, unit: FrequencyWeekChanged, mask: "????-W??"},
	PostfixMonth:   {name: "month", scheme: schemeDate, unit: FrequencyMonthChanged, layout: "2006-01", mask: "????-??"},
	PostfixYear:    {name: "year", scheme: schemeDate, unit: FrequencyYearChanged, layout: "2006", mask: "????"},

	PostfixLogMinute:  {name: "log_minute", scheme: schemeLog, unit: FrequencyMinuteChanged, layout: "2006-01-02 15_04", mask: "????-??-?? ??_??"},
	PostfixLogMinuteT: {name: "log_minute_t", scheme: schemeLog, unit: FrequencyMinuteChanged, layout: "2006-01-02T15_04", mask: "????-??-??T??_??"},
	PostfixLogHour:    {name: "log_hour", scheme: schemeLog, unit: FrequencyHourChanged, layout: "2006-01-02 15", mask: "????-??-?? ??"},
	PostfixLogHourT:   {name: "log_hour_t", scheme: schemeLog, unit: FrequencyHourChanged, layout: "2006-01-02T15", mask: "????-??-??T??"},
	PostfixLogDay:     {name: "log_day", scheme: schemeLog, unit: FrequencyDayChanged, layout: "2006-01-02", mask: "????-??-??"},
	PostfixLogWeek:    {name: "log_week", scheme: schemeLog, unit: FrequencyWeekChanged, mask: "????-W??"},
	PostfixLogMonth:   {name: "log_month", scheme: schemeLog, unit: FrequencyMonthChanged, layout: "2006-01", mask: "????-??"},
	PostfixLogYear:    {name: "log_year", scheme: schemeLog, unit: FrequencyYearChanged, layout: "2006", mask: "????"},

	PostfixDotNumberMinutely: {name: "dot_number_minutely", scheme: schemeDotNumber, unit: FrequencyMinuteChanged, layout: "2006-01-02 15_04"},
	PostfixDotNumberHourly:   {name: "dot_number_hourly", scheme: schemeDotNumber, unit: FrequencyHourChanged, layout: "2006-01-02 15"},
	PostfixDotNumberDaily:    {name: "dot_number_daily", scheme: schemeDotNumber, unit: FrequencyDayChanged, layout: "2006-01-02"},
	PostfixDotNumberWeekly:   {name: "dot_number_weekly", scheme: schemeDotNumber, unit: FrequencyWeekChanged},
	PostfixDotNumberMonthly:  {name: "dot_number_monthly", scheme: schemeDotNumber, unit: FrequencyMonthChanged, layout: "2006-01"},
	PostfixDotNumberYearly:   {name: "dot_number_yearly", scheme: schemeDotNumber, unit: FrequencyYearChanged, layout: "2006"},
}

// ParsePostfix converts a config string to a Postfix
func ParsePostfix(s string) (Postfix, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return PostfixNone, nil
	}
	for p, info := range postfixTable {
		if info.name == key {
			return p, nil
		}
	}
	return PostfixNone, fmtErrorf("invalid postfix: '%s'", s)
}

// String returns the config name of the postfix
func (p Postfix) String() string {
	if info, ok := postfixTable[p]; ok {
		return info.name
	}
	return fmt.Sprintf("Postfix(%d)", int(p))
}

func (p Postfix) info() postfixInfo {
	return postfixTable[p]
}

func (p Postfix) scheme() namingScheme {
	return postfixTable[p].scheme
}

// unit returns the calendar frequency implied by the postfix
func (p Postfix) unit() Frequency {
	return postfixTable[p].unit
}

// Stamp formats the date/time-stamp portion of a filename for ts
func (p Postfix) Stamp(ts time.Time) string {
	info := p.info()
	if info.unit == FrequencyWeekChanged {
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
	if info.layout == "" {
		return ""
	}
	return ts.Format(info.layout)
}

// Mask returns the wildcard mask matching the stamp portion of any filename of this postfix
func (p Postfix) Mask() string {
	return p.info().mask
}

// activeFileName returns the name of the logfile an event at ts is written to
func activeFileName(app string, p Postfix, ts time.Time) string {
	if p.scheme() == schemeDate {
		return app + "_" + p.Stamp(ts) + logExtension
	}
	return app + logExtension
}

// rotatedFileName returns the name a log-scheme file carries after being rotated for stamp
func rotatedFileName(app, stamp string) string {
	return app + "_" + stamp + logExtension
}

// candidateMask returns the wildcard mask discovery uses for a target's old logfiles
func candidateMask(app string, p Postfix) string {
	switch p.scheme() {
	case schemeDate, schemeLog:
		return escapeMask(app) + "_" + p.Mask() + logExtension
	case schemeDotNumber:
		return escapeMask(app) + logExtension + ".*"
	}
	return escapeMask(app) + logExtension
}

// matchCandidate reports whether name is a rotation candidate for the mask; a trailing .zst is ignored
func matchCandidate(mask, name string, p Postfix) bool {
	base := strings.TrimSuffix(name, zstdSuffix)
	ok, err := filepath.Match(mask, base)
	if err != nil || !ok {
		return false
	}
	if p.scheme() == schemeDotNumber {
		_, valid := dotNumber(base)
		return valid
	}
	return true
}

// escapeMask escapes wildcard characters in a literal filename part
func escapeMask(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// unitValue masks ts to the granularity of f; values grow monotonically with time
func unitValue(f Frequency, ts time.Time) int64 {
	y, m, d := ts.Date()
	loc := ts.Location()
	switch f {
	case FrequencySecondChanged:
		return ts.Unix()
	case FrequencyMinuteChanged:
		return ts.Unix() / 60
	case FrequencyHourChanged:
		return time.Date(y, m, d, ts.Hour(), 0, 0, 0, loc).Unix()
	case FrequencyDayChanged:
		return time.Date(y, m, d, 0, 0, 0, 0, loc).Unix()
	case FrequencyWeekChanged:
		year, week := ts.ISOWeek()
		return int64(year)*100 + int64(week)
	case FrequencyMonthChanged:
		return int64(y)*100 + int64(m)
	case FrequencyYearChanged:
		return int64(y)
	}
	return 0
}
