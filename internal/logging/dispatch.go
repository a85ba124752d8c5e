package logging

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/smazurov/complog/internal/events"
	"github.com/smazurov/complog/internal/metrics"
)

// record is one log call on its way to a sink.
type record struct {
	f        *Facility
	tc       *ThreadContext
	comp     Component
	level    Level
	function string
	format   string
	args     []any
	time     time.Time
	enrich   bool

	// bodyStart is the offset of the message body in the thread buffer.
	bodyStart int
}

// Enabled reports whether a record at level would be dispatched for comp.
func (f *Facility) Enabled(comp Component, level Level) bool {
	if !comp.valid() {
		return false
	}
	return level.Enabled(Level(f.components[comp].level.Load()))
}

// Display dispatches one record for comp at level. Records above the
// component threshold are dropped before any rendering. A LevelFatal record
// runs the cleanup functions and exits the process once delivered.
func (f *Facility) Display(ctx context.Context, comp Component, function string, level Level, format string, args ...any) {
	level = ClampLevel(level)
	if !f.Enabled(comp, level) {
		return
	}
	f.dispatch(ctx, comp, function, level, format, args)
}

func (f *Facility) dispatch(ctx context.Context, comp Component, function string, level Level, format string, args []any) {
	tc, release := f.getContext(ctx, comp != ComponentLogEmerg)

	r := &record{
		f:        f,
		tc:       tc,
		comp:     comp,
		level:    level,
		function: function,
		format:   format,
		args:     args,
		time:     f.now(),
		enrich:   level != LevelNull && level <= f.Level(ComponentDebugInfo),
	}

	dest := f.components[comp].destination.Load()
	f.sinkFor(dest).write(r)
	f.account(r, dest)
	release()

	if level == LevelFatal {
		f.Terminate()
	}
}

// renderPrefix writes the full record prefix and returns the remaining
// capacity.
func (r *record) renderPrefix() int {
	f, t := r.f, r.time
	left := r.tc.buf.Printf("%02d/%02d/%04d %02d:%02d:%02d epoch=%d : %s : %s-%d[%s] :",
		t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second(), t.Unix(),
		f.HostName(), f.ProgramName(), f.pid, r.tc.Name())
	if left > 0 && r.withFunction() {
		left = r.tc.buf.Printf("%s :", r.function)
	}
	return left
}

// renderShortPrefix writes the prefix used for the system log, which stamps
// time and process itself.
func (r *record) renderShortPrefix() int {
	left := r.tc.buf.Printf("[%s] :", r.tc.Name())
	if left > 0 && r.withFunction() {
		left = r.tc.buf.Printf("%s :", r.function)
	}
	return left
}

func (r *record) renderBody(left int) {
	r.bodyStart = r.tc.buf.Len()
	if left <= 0 {
		return
	}
	r.tc.buf.Printf(r.format, r.args...)
}

func (r *record) withFunction() bool {
	return r.f.Level(r.comp) >= r.f.Level(ComponentVerbosity)
}

// message returns the rendered body.
func (r *record) message(dest *Destination) string {
	if dest.Kind == DestBuffer {
		return dest.Buffer.String()
	}
	b := r.tc.buf.Bytes()
	if r.bodyStart > len(b) {
		return ""
	}
	return string(b[r.bodyStart:])
}

func (f *Facility) account(r *record, dest *Destination) {
	metrics.RecordDispatched(r.comp.Name(), r.level.String())
	if f.history == nil && f.bus == nil {
		return
	}

	entry := LogEntry{
		Seq:       f.seq.Add(1),
		Timestamp: r.time,
		Component: r.comp.Name(),
		Level:     r.level.String(),
		Thread:    r.tc.Name(),
		Function:  r.function,
		Message:   r.message(dest),
	}
	if f.history != nil {
		f.history.Write(entry)
	}
	if f.bus != nil {
		f.bus.Publish(events.LogEntryEvent{
			Seq:       entry.Seq,
			Timestamp: entry.Timestamp.Format(time.RFC3339Nano),
			Component: entry.Component,
			Level:     entry.Level,
			Thread:    entry.Thread,
			Function:  entry.Function,
			Message:   entry.Message,
		})
	}
}

// callerName returns the short name of the function skip frames above its
// caller.
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return shortFuncName(fn.Name())
}

// shortFuncName trims the import path from a qualified function name.
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (f *Facility) logf(ctx context.Context, comp Component, level Level, format string, args []any) {
	if !f.Enabled(comp, level) {
		return
	}
	f.dispatch(ctx, comp, callerName(2), level, format, args)
}

// Fatal logs at LevelFatal, runs the cleanup functions and exits.
func (f *Facility) Fatal(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelFatal, format, args)
}

// Major logs at LevelMajor.
func (f *Facility) Major(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelMajor, format, args)
}

// Crit logs at LevelCrit.
func (f *Facility) Crit(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelCrit, format, args)
}

// Warn logs at LevelWarn.
func (f *Facility) Warn(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelWarn, format, args)
}

// Event logs at LevelEvent.
func (f *Facility) Event(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelEvent, format, args)
}

// Info logs at LevelInfo.
func (f *Facility) Info(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelInfo, format, args)
}

// Debug logs at LevelDebug.
func (f *Facility) Debug(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelDebug, format, args)
}

// MidDebug logs at LevelMidDebug.
func (f *Facility) MidDebug(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelMidDebug, format, args)
}

// FullDebug logs at LevelFullDebug.
func (f *Facility) FullDebug(ctx context.Context, comp Component, format string, args ...any) {
	f.logf(ctx, comp, LevelFullDebug, format, args)
}

// DisplayErrorLine logs the description of an error family code at
// LevelCrit.
func (f *Facility) DisplayErrorLine(ctx context.Context, comp Component, function string, family, code, status, line int) {
	if !f.Enabled(comp, LevelCrit) {
		return
	}
	buf := NewBuffer(LogBufferLen)
	f.FormatError(buf, family, code, status, line)
	f.dispatch(ctx, comp, function, LevelCrit, "%s", []any{buf.String()})
}
