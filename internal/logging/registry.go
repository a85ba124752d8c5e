package logging

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
	"time"

	"github.com/smazurov/complog/internal/events"
	"github.com/smazurov/complog/internal/metrics"
)

// Level returns the current threshold of comp.
func (f *Facility) Level(comp Component) Level {
	if !comp.valid() {
		return LevelNull
	}
	return Level(f.components[comp].level.Load())
}

// Destination returns where comp's records currently go.
func (f *Facility) Destination(comp Component) Destination {
	if !comp.valid() {
		return Destination{}
	}
	return *f.components[comp].destination.Load()
}

// Pinned reports whether comp's level was set from the environment.
func (f *Facility) Pinned(comp Component) bool {
	if !comp.valid() {
		return false
	}
	return f.components[comp].pinned.Load()
}

// SetComponentLevel changes the threshold of one component. ComponentAll
// changes every component. A level pinned by the environment is kept.
func (f *Facility) SetComponentLevel(comp Component, level Level) {
	f.setComponentLevel(comp, level, "config")
}

// SetComponentLevelFrom is SetComponentLevel for management requests: it
// refuses a pinned component with ErrLevelPinned instead of warning, and
// reports source in the change event.
func (f *Facility) SetComponentLevelFrom(comp Component, level Level, source string) error {
	if !comp.valid() {
		return ErrUnknownComponent
	}
	if comp != ComponentAll && f.Pinned(comp) {
		return fmt.Errorf("%s: %w", comp.Name(), ErrLevelPinned)
	}
	f.setComponentLevel(comp, level, source)
	return nil
}

func (f *Facility) setComponentLevel(comp Component, level Level, source string) {
	if comp == ComponentAll {
		f.setAllLevels(level, source)
		return
	}
	if !comp.valid() {
		return
	}

	level = ClampLevel(level)
	st := &f.components[comp]
	cur := Level(st.level.Load())

	if st.pinned.Load() {
		f.Warn(context.Background(), ComponentConfig,
			"LOG %s level %s from config is ignored because %s was set in environment",
			comp.Name(), level, cur)
		return
	}

	if cur == level {
		return
	}
	f.logChanges("Changing log level of %s from %s to %s", comp.Name(), cur, level)
	st.level.Store(int32(level))
	f.levelChanged(comp, cur, level, source)
}

// SetAllLevels sets the threshold of every real component. The pseudo
// components and components pinned by the environment keep their level.
func (f *Facility) SetAllLevels(level Level) {
	f.setAllLevels(level, "config")
}

func (f *Facility) setAllLevels(level Level, source string) {
	level = ClampLevel(level)
	for c := ComponentAll; c < ComponentFake; c++ {
		st := &f.components[c]
		if st.pinned.Load() {
			continue
		}
		old := Level(st.level.Swap(int32(level)))
		if old != level {
			f.levelChanged(c, old, level, source)
		}
	}
	f.logChanges("Setting log level for all components to %s", level)
}

func (f *Facility) levelChanged(comp Component, from, to Level, source string) {
	metrics.SetComponentLevel(comp.Name(), int(to))
	if f.bus == nil {
		return
	}
	f.bus.Publish(events.LevelChangedEvent{
		Component: comp.Name(),
		From:      from.String(),
		To:        to.String(),
		Source:    source,
		Timestamp: f.now().Format(time.RFC3339),
	})
}

// SetDestination routes comp to the sink named by target: SYSLOG, STDERR,
// STDOUT, TEST or a file path.
func (f *Facility) SetDestination(comp Component, target string) error {
	if !comp.valid() {
		return ErrUnknownComponent
	}
	dest, err := f.parseDestination(target)
	if err != nil {
		return err
	}
	f.setDestination(comp, dest)
	return nil
}

// SetBuffer routes comp into a caller-owned buffer. Each record replaces the
// buffer contents.
func (f *Facility) SetBuffer(comp Component, buf *Buffer) {
	if !comp.valid() || buf == nil {
		return
	}
	f.setDestination(comp, &Destination{Kind: DestBuffer, Buffer: buf})
}

// SetDefaultDestination routes COMPONENT_LOG and then every real component
// except COMPONENT_STDOUT to target.
func (f *Facility) SetDefaultDestination(target string) error {
	dest, err := f.parseDestination(target)
	if err != nil {
		return err
	}
	f.setDestination(ComponentLog, dest)
	f.logChanges("Setting log destination for ALL components to %s", dest)
	for c := ComponentAll; c < ComponentFake; c++ {
		if c == ComponentStdout || c == ComponentLog {
			continue
		}
		f.setDestination(c, dest)
	}
	return nil
}

func (f *Facility) setDestination(comp Component, dest *Destination) {
	st := &f.components[comp]
	old := st.destination.Load()
	changed := !old.sameAs(*dest)

	// the notice about COMPONENT_LOG itself goes to its new destination
	if changed && comp != ComponentLog {
		f.logChanges("Changing log destination for %s from %s to %s", comp.Name(), old, dest)
	}
	st.destination.Store(dest)
	if !changed {
		return
	}
	if comp == ComponentLog {
		f.logChanges("Changing log destination for %s from %s to %s", comp.Name(), old, dest)
	}
	if f.bus != nil {
		f.bus.Publish(events.DestinationChangedEvent{
			Component: comp.Name(),
			From:      old.String(),
			To:        dest.String(),
			Timestamp: f.now().Format(time.RFC3339),
		})
	}
}

func (f *Facility) parseDestination(target string) (*Destination, error) {
	if kind, ok := parseDestinationKind(target); ok {
		return &Destination{Kind: kind}, nil
	}
	if len(target) > MaxPathLen {
		f.Major(context.Background(), ComponentLog, "Could not set default logging to %s (path exceeds MAXPATHLEN)", target)
		return nil, fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(target))
	}
	if err := f.validLogPath(target); err != nil {
		f.Major(context.Background(), ComponentLog, "Could not set default logging to %s", target)
		return nil, err
	}
	return &Destination{Kind: DestFile, Path: target}, nil
}

// validLogPath checks that the directory of path is writable.
func (f *Facility) validLogPath(path string) error {
	dir := filepath.Dir(path)
	err := checkWritableDir(dir)
	if err == nil {
		return nil
	}

	var reason string
	switch {
	case errors.Is(err, syscall.EACCES):
		reason = "Either access is denied to the file or denied to one of the directories in %s"
	case errors.Is(err, syscall.ELOOP):
		reason = "Too many symbolic links were encountered in resolving %s"
	case errors.Is(err, syscall.ENAMETOOLONG):
		reason = "%s is too long of a pathname."
	case errors.Is(err, syscall.ENOENT):
		reason = "A component of %s does not exist."
	case errors.Is(err, syscall.ENOTDIR):
		reason = "%s is not a directory."
	case errors.Is(err, syscall.EROFS):
		reason = "Write permission was requested for %s on a read-only file system."
	default:
		reason = "%s is invalid - unknown error"
	}
	f.Crit(context.Background(), ComponentLog, reason, dir)
	return fmt.Errorf("%w: %s: %w", ErrInvalidLogPath, dir, err)
}

// logChanges emits a facility notice on COMPONENT_LOG. Notices are muted
// while COMPONENT_LOG is routed to TEST below full debug, so test output
// only carries what the test logged.
func (f *Facility) logChanges(format string, args ...any) {
	st := &f.components[ComponentLog]
	if st.destination.Load().Kind == DestTest && Level(st.level.Load()) != LevelFullDebug {
		return
	}
	f.Display(context.Background(), ComponentLog, callerName(1), LevelNull, "LOG: "+format, args...)
}
