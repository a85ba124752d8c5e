package logging

import (
	"context"
)

// ConfigPair is one component = level line of the log configuration block.
type ConfigPair struct {
	Key   string
	Value string
}

// ReadEnvironment applies levels from environment variables named after the
// components (COMPONENT_FSAL=NIV_DEBUG). Levels set this way are pinned and
// later configuration cannot change them.
func (f *Facility) ReadEnvironment() {
	for c := ComponentAll; c < NumComponents; c++ {
		value, ok := f.getenv(c.Name())
		if !ok {
			continue
		}
		level, ok := LevelByName(value)
		if !ok {
			f.Crit(context.Background(), ComponentLog,
				"Environment variable %s exists, but the value %s is not a valid log level.",
				c.Name(), value)
			continue
		}

		st := &f.components[c]
		old := Level(st.level.Swap(int32(level)))
		st.pinned.Store(true)
		f.logChanges("Using environment variable to switch log level for %s from %s to %s",
			c.Name(), old, level)
		if old != level {
			f.levelChanged(c, old, level, "environment")
		}
	}
}

// ApplyConfig applies component levels read from configuration and returns
// how many were applied. Unknown components and levels are reported and
// skipped.
func (f *Facility) ApplyConfig(pairs []ConfigPair) int {
	applied := 0
	for _, p := range pairs {
		comp, ok := ComponentByName(p.Key)
		if !ok {
			f.Warn(context.Background(), ComponentConfig,
				"Error parsing section \"LOG\" of configuration file, \"%s\" is not a valid LOG COMPONENT",
				p.Key)
			continue
		}
		level, ok := LevelByName(p.Value)
		if !ok {
			f.Warn(context.Background(), ComponentConfig,
				"Error parsing section \"LOG\" of configuration file, \"%s\" is not a valid LOG LEVEL for \"%s\"",
				p.Value, p.Key)
			continue
		}
		f.SetComponentLevel(comp, level)
		applied++
	}
	return applied
}

// SetNameProgram sets the program name rendered in record prefixes. A name
// longer than MaxProgramNameLen is fatal.
func (f *Facility) SetNameProgram(name string) {
	if len(name) > MaxProgramNameLen {
		f.Display(context.Background(), ComponentLog, "SetNameProgram", LevelFatal,
			"Program name %s too long", name)
		return
	}
	f.programName.Store(&name)
}

// SetNameHost sets the host name rendered in record prefixes. A name longer
// than MaxHostNameLen is fatal.
func (f *Facility) SetNameHost(name string) {
	if len(name) > MaxHostNameLen {
		f.Display(context.Background(), ComponentLog, "SetNameHost", LevelFatal,
			"Host name %s too long", name)
		return
	}
	f.hostName.Store(&name)
}
