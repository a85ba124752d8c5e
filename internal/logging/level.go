package logging

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// Level is a message severity. Lower values are more severe, except LevelNull
// which is reserved for facility notices that bypass every threshold.
type Level int

const (
	LevelNull Level = iota
	LevelFatal
	LevelMajor
	LevelCrit
	LevelWarn
	LevelEvent
	LevelInfo
	LevelDebug
	LevelMidDebug
	LevelFullDebug

	// NumLevels is the size of the level table.
	NumLevels
)

// levelInfo is one row of the level table.
type levelInfo struct {
	value    Level
	name     string
	short    string
	priority journal.Priority
}

// levelTable maps every level to its names and the syslog priority used when
// the record goes to the system log.
var levelTable = [NumLevels]levelInfo{
	{LevelNull, "NIV_NULL", "NULL", journal.PriNotice},
	{LevelFatal, "NIV_FATAL", "FATAL", journal.PriCrit},
	{LevelMajor, "NIV_MAJ", "MAJ", journal.PriCrit},
	{LevelCrit, "NIV_CRIT", "CRIT", journal.PriErr},
	{LevelWarn, "NIV_WARN", "WARN", journal.PriWarning},
	{LevelEvent, "NIV_EVENT", "EVENT", journal.PriNotice},
	{LevelInfo, "NIV_INFO", "INFO", journal.PriInfo},
	{LevelDebug, "NIV_DEBUG", "DEBUG", journal.PriDebug},
	{LevelMidDebug, "NIV_MID_DEBUG", "MID_DEBUG", journal.PriDebug},
	{LevelFullDebug, "NIV_FULL_DEBUG", "FULL_DEBUG", journal.PriDebug},
}

// LevelByName resolves a level from its full name (NIV_INFO) or its short
// alias (INFO), ignoring case.
func LevelByName(name string) (Level, bool) {
	for _, info := range levelTable {
		if strings.EqualFold(info.name, name) || strings.EqualFold(info.short, name) {
			return info.value, true
		}
	}
	return 0, false
}

// Name returns the full symbolic name of the level.
func (l Level) Name() (string, bool) {
	if l < LevelNull || l >= NumLevels {
		return "", false
	}
	return levelTable[l].name, true
}

// ShortName returns the level alias without the NIV_ prefix.
func (l Level) ShortName() string {
	if l < LevelNull || l >= NumLevels {
		return l.String()
	}
	return levelTable[l].short
}

// String implements fmt.Stringer.
func (l Level) String() string {
	if name, ok := l.Name(); ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Priority returns the syslog priority for the level. Out-of-range levels are
// reported at debug priority.
func (l Level) Priority() journal.Priority {
	if l < LevelNull || l >= NumLevels {
		return journal.PriDebug
	}
	return levelTable[l].priority
}

// Enabled reports whether a message at level l passes a component whose
// threshold is the given level.
func (l Level) Enabled(threshold Level) bool {
	return l <= threshold
}

// ClampLevel forces a level into the table range.
func ClampLevel(l Level) Level {
	switch {
	case l < LevelNull:
		return LevelNull
	case l >= NumLevels:
		return NumLevels - 1
	default:
		return l
	}
}

// Levels returns every level in table order.
func Levels() []Level {
	levels := make([]Level, 0, NumLevels)
	for _, info := range levelTable {
		levels = append(levels, info.value)
	}
	return levels
}
