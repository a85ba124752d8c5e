package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// RPCWarnf logs a message from the embedded RPC layer on COMPONENT_RPC at
// LevelDebug.
func (f *Facility) RPCWarnf(format string, args ...any) {
	f.Display(context.Background(), ComponentRPC, "rpc", LevelDebug, format, args...)
}

// Writer returns an io.Writer that logs each write as one record of comp at
// level.
func (f *Facility) Writer(comp Component, level Level) io.Writer {
	return &componentWriter{f: f, comp: comp, level: level}
}

type componentWriter struct {
	f     *Facility
	comp  Component
	level Level
}

func (w *componentWriter) Write(p []byte) (int, error) {
	if w.f.Enabled(w.comp, w.level) {
		msg := string(bytes.TrimRight(p, "\n"))
		w.f.dispatch(context.Background(), w.comp, "writer", w.level, "%s", []any{msg})
	}
	return len(p), nil
}

// SlogHandler returns a slog.Handler that logs through comp.
func (f *Facility) SlogHandler(comp Component) slog.Handler {
	return &slogHandler{f: f, comp: comp}
}

type slogHandler struct {
	f    *Facility
	comp Component
	// pre holds the attributes added through WithAttrs, already rendered.
	pre    string
	groups []string
}

// levelFromSlog maps slog levels onto the level table.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelCrit
	case l >= slog.LevelWarn:
		return LevelWarn
	case l >= slog.LevelInfo:
		return LevelInfo
	case l >= slog.LevelDebug:
		return LevelDebug
	default:
		return LevelFullDebug
	}
}

// facility returns the bound facility, or the current default one.
func (h *slogHandler) facility() *Facility {
	if h.f != nil {
		return h.f
	}
	return Default()
}

// Enabled implements slog.Handler.
func (h *slogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.facility().Enabled(h.comp, levelFromSlog(l))
}

// Handle implements slog.Handler.
func (h *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	f := h.facility()
	level := levelFromSlog(r.Level)
	if !f.Enabled(h.comp, level) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString(h.pre)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.groups, a)
		return true
	})

	function := "slog"
	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		if fr, _ := frames.Next(); fr.Function != "" {
			function = shortFuncName(fr.Function)
		}
	}

	f.dispatch(ctx, h.comp, function, level, "%s", []any{sb.String()})
	return nil
}

// appendAttr renders a as key=value with dot-notation keys for groups.
func appendAttr(sb *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		sub := groups
		if a.Key != "" {
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, sub, ga)
		}
		return
	case slog.KindTime:
		writeKV(sb, key, a.Value.Time().Format(time.RFC3339Nano))
	case slog.KindDuration:
		writeKV(sb, key, a.Value.Duration().String())
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			writeKV(sb, key, err.Error())
		} else {
			writeKV(sb, key, a.Value.String())
		}
	default:
		writeKV(sb, key, a.Value.String())
	}
}

func writeKV(sb *strings.Builder, key, value string) {
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	sb.WriteString(value)
}

// WithAttrs implements slog.Handler.
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.pre)
	for _, a := range attrs {
		appendAttr(&sb, h.groups, a)
	}

	return &slogHandler{
		f:      h.f,
		comp:   h.comp,
		pre:    sb.String(),
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &slogHandler{
		f:      h.f,
		comp:   h.comp,
		pre:    h.pre,
		groups: newGroups,
	}
}
