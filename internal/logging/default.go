package logging

import (
	"context"
	"io"
	"log/slog"
)

// Display dispatches a record through the default facility.
func Display(ctx context.Context, comp Component, function string, level Level, format string, args ...any) {
	Default().Display(ctx, comp, function, level, format, args...)
}

// Enabled reports whether the default facility would dispatch a record.
func Enabled(comp Component, level Level) bool { return Default().Enabled(comp, level) }

// Fatal logs at LevelFatal through the default facility, then exits.
func Fatal(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelFatal, format, args)
}

// Major logs at LevelMajor through the default facility.
func Major(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelMajor, format, args)
}

// Crit logs at LevelCrit through the default facility.
func Crit(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelCrit, format, args)
}

// Warn logs at LevelWarn through the default facility.
func Warn(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelWarn, format, args)
}

// Event logs at LevelEvent through the default facility.
func Event(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelEvent, format, args)
}

// Info logs at LevelInfo through the default facility.
func Info(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelInfo, format, args)
}

// Debug logs at LevelDebug through the default facility.
func Debug(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelDebug, format, args)
}

// MidDebug logs at LevelMidDebug through the default facility.
func MidDebug(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelMidDebug, format, args)
}

// FullDebug logs at LevelFullDebug through the default facility.
func FullDebug(ctx context.Context, comp Component, format string, args ...any) {
	Default().logf(ctx, comp, LevelFullDebug, format, args)
}

// DisplayErrorLine logs an error family code through the default facility.
func DisplayErrorLine(ctx context.Context, comp Component, function string, family, code, status, line int) {
	Default().DisplayErrorLine(ctx, comp, function, family, code, status, line)
}

// ComponentLevel returns the threshold of comp in the default facility.
func ComponentLevel(comp Component) Level { return Default().Level(comp) }

// ComponentDestination returns where the default facility sends comp.
func ComponentDestination(comp Component) Destination { return Default().Destination(comp) }

func SetComponentLevel(comp Component, level Level) { Default().SetComponentLevel(comp, level) }

func SetAllLevels(level Level) { Default().SetAllLevels(level) }

func SetDestination(comp Component, target string) error { return Default().SetDestination(comp, target) }

func SetDefaultDestination(target string) error { return Default().SetDefaultDestination(target) }

func SetBuffer(comp Component, buf *Buffer) { Default().SetBuffer(comp, buf) }

// WithThreadName names the execution context in the default facility.
func WithThreadName(ctx context.Context, name string) context.Context {
	return Default().WithThreadName(ctx, name)
}

func RegisterFamily(requested int, name string, entries []ErrorEntry) (int, error) {
	return Default().RegisterFamily(requested, name, entries)
}

func RegisterCleanup(fn func()) { Default().RegisterCleanup(fn) }

func ReadEnvironment() { Default().ReadEnvironment() }

func ApplyConfig(pairs []ConfigPair) int { return Default().ApplyConfig(pairs) }

func SetNameProgram(name string) { Default().SetNameProgram(name) }

func SetNameHost(name string) { Default().SetNameHost(name) }

// RPCWarnf logs an RPC layer message through the default facility.
func RPCWarnf(format string, args ...any) { Default().RPCWarnf(format, args...) }

// Writer returns an io.Writer logging through the default facility.
func Writer(comp Component, level Level) io.Writer { return Default().Writer(comp, level) }

// SlogHandler returns a slog.Handler logging through the default facility.
func SlogHandler(comp Component) slog.Handler { return Default().SlogHandler(comp) }
