package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/coreos/go-systemd/v22/journal"
)

func TestDisplayGate(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	before := len(tf.History())

	tf.Display(t.Context(), ComponentFSAL, "f", LevelDebug, "dropped %d", 1)

	if tf.stderr.Len() != 0 {
		t.Errorf("filtered record was written: %q", tf.stderr.String())
	}
	if got := len(tf.History()); got != before {
		t.Errorf("filtered record reached the history: %d entries, want %d", got, before)
	}
	if tf.Enabled(ComponentFSAL, LevelDebug) {
		t.Error("Enabled(FSAL, DEBUG) = true at threshold EVENT")
	}
	if tf.Enabled(NumComponents, LevelNull) {
		t.Error("Enabled() on an unknown component should be false")
	}
}

func TestDisplayPrefix(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	ctx := tf.WithThreadName(context.Background(), "worker-1")
	tf.Display(ctx, ComponentFSAL, "main.run", LevelWarn, "disk=%d", 42)

	want := fmt.Sprintf("09/03/2025 14:02:07 epoch=%d : host : prog-%d[worker-1] :main.run :disk=42\n",
		testTime.Unix(), os.Getpid())
	if got := tf.stderr.String(); got != want {
		t.Errorf("record = %q\nwant     %q", got, want)
	}
}

func TestDisplayVerbosity(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDOUT"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.SetComponentLevel(ComponentVerbosity, LevelFullDebug)

	tf.Display(context.Background(), ComponentFSAL, "main.run", LevelWarn, "disk=%d", 42)

	got := tf.stdout.String()
	if strings.Contains(got, "main.run") {
		t.Errorf("function name rendered below verbosity threshold: %q", got)
	}
	if !strings.HasSuffix(got, "[* log emergency *] :disk=42\n") {
		t.Errorf("record = %q", got)
	}
}

func TestDisplayConvenience(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.SetComponentLevel(ComponentFSAL, LevelFullDebug)

	tests := []struct {
		name string
		log  func(f *Facility, ctx context.Context, comp Component, format string, args ...any)
	}{
		{"Major", (*Facility).Major},
		{"Crit", (*Facility).Crit},
		{"Warn", (*Facility).Warn},
		{"Event", (*Facility).Event},
		{"Info", (*Facility).Info},
		{"Debug", (*Facility).Debug},
		{"MidDebug", (*Facility).MidDebug},
		{"FullDebug", (*Facility).FullDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf.stderr.Reset()
			tt.log(tf.Facility, context.Background(), ComponentFSAL, "via %s", tt.name)
			got := tf.stderr.String()
			if !strings.HasSuffix(got, "via "+tt.name+"\n") {
				t.Errorf("record = %q", got)
			}
			if !strings.Contains(got, ":logging.TestDisplayConvenience") {
				t.Errorf("caller function missing in %q", got)
			}
		})
	}
}

func TestDisplayFatal(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentMain, "TEST"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	var order []int
	tf.RegisterCleanup(func() { order = append(order, 1) })
	tf.RegisterCleanup(func() { order = append(order, 2) })

	tf.Fatal(context.Background(), ComponentMain, "cannot continue: %s", "disk gone")

	if got := tf.stdout.String(); got != "cannot continue: disk gone\n" {
		t.Errorf("record = %q", got)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanup order = %v, want [2 1]", order)
	}
	if len(tf.exits) != 1 || tf.exits[0] != 1 {
		t.Errorf("exit codes = %v, want [1]", tf.exits)
	}
}

func TestDisplayTruncates(t *testing.T) {
	tf := newTestFacility(t, func(o *Options) { o.BufferSize = 64 })
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	tf.Warn(context.Background(), ComponentFSAL, "%s", strings.Repeat("x", 500))

	got := tf.stderr.String()
	if len(got) != 65 {
		t.Errorf("len(record) = %d, want 65", len(got))
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("truncated record lost its newline")
	}
}

func TestDisplayTestDestination(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "TEST"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	tf.Warn(context.Background(), ComponentFSAL, "disk=%d", 42)

	if got := tf.stdout.String(); got != "disk=42\n" {
		t.Errorf("record = %q, want %q", got, "disk=42\n")
	}
}

func TestDisplayBufferDestination(t *testing.T) {
	tf := newTestFacility(t)
	buf := NewBuffer(16)
	tf.SetBuffer(ComponentFSAL, buf)

	tf.Warn(context.Background(), ComponentFSAL, "disk=%d", 42)
	if got := buf.String(); got != "disk=42" {
		t.Errorf("buffer = %q, want disk=42", got)
	}

	tf.Warn(context.Background(), ComponentFSAL, "second record is long")
	if got := buf.String(); got != "second record is" {
		t.Errorf("buffer = %q, want the truncated second record", got)
	}
	if tf.stdout.Len() != 0 || tf.stderr.Len() != 0 {
		t.Error("buffer destination wrote to a stream")
	}
}

func TestDisplaySyslog(t *testing.T) {
	tf := newTestFacility(t)

	ctx := tf.WithThreadName(context.Background(), "worker-1")
	tf.Display(ctx, ComponentFSAL, "main.run", LevelCrit, "disk=%d", 42)

	lines := tf.syslog.Lines()
	if len(lines) != 1 {
		t.Fatalf("syslog lines = %d, want 1: %q", len(lines), lines)
	}
	if lines[0] != "[worker-1] :main.run :disk=42" {
		t.Errorf("syslog line = %q", lines[0])
	}
	if tf.syslog.pris[0] != journal.PriErr {
		t.Errorf("priority = %v, want %v", tf.syslog.pris[0], journal.PriErr)
	}
}

func TestDisplayDebugInfo(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.SetComponentLevel(ComponentDebugInfo, LevelCrit)

	tf.Crit(context.Background(), ComponentFSAL, "enriched")
	got := tf.stderr.String()
	for _, want := range []string{"enriched\n", "\nDEBUG INFO -->\nbacktrace:\n", "open_fd_count", "rlimit_max", "<--DEBUG INFO\n\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("record missing %q:\n%s", want, got)
		}
	}

	tf.stderr.Reset()
	tf.Warn(context.Background(), ComponentFSAL, "plain")
	if strings.Contains(tf.stderr.String(), "DEBUG INFO") {
		t.Error("record below the debug info threshold was enriched")
	}
}

func TestDisplayFile(t *testing.T) {
	for _, locked := range []bool{true, false} {
		t.Run(fmt.Sprintf("locked=%v", locked), func(t *testing.T) {
			tf := newTestFacility(t, func(o *Options) { o.LockFiles = locked })
			path := filepath.Join(t.TempDir(), "app.log")
			if err := tf.SetDestination(ComponentFSAL, path); err != nil {
				t.Fatalf("SetDestination() error = %v", err)
			}

			tf.Warn(context.Background(), ComponentFSAL, "first")
			tf.Warn(context.Background(), ComponentFSAL, "second")

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			if len(lines) != 2 {
				t.Fatalf("lines = %q, want 2", lines)
			}
			if !strings.HasSuffix(lines[0], ":first") || !strings.HasSuffix(lines[1], ":second") {
				t.Errorf("lines = %q", lines)
			}
			if tf.openFiles.Load() != 0 {
				t.Errorf("open log files = %d, want 0", tf.openFiles.Load())
			}
		})
	}
}

func TestDisplayFileAccessError(t *testing.T) {
	tf := newTestFacility(t)
	dir := filepath.Join(t.TempDir(), "logs")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "app.log")
	if err := tf.SetDestination(ComponentFSAL, path); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}

	tf.Warn(context.Background(), ComponentFSAL, "lost record")

	got := tf.stderr.String()
	want := "Error ERR_FILE_LOG : failed to access the log : status 2 on file " + path + " message was:\n"
	if !strings.HasPrefix(got, want) {
		t.Errorf("stderr = %q, want prefix %q", got, want)
	}
	if !strings.HasSuffix(got, ":lost record\n") {
		t.Errorf("stderr = %q, want the lost record", got)
	}
}

func TestDisplayConcurrentFile(t *testing.T) {
	tf := newTestFacility(t)
	path := filepath.Join(t.TempDir(), "app.log")
	if err := tf.SetDestination(ComponentFSAL, path); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := tf.WithThreadName(context.Background(), fmt.Sprintf("worker-%d", w))
			for i := range perWorker {
				tf.Warn(ctx, ComponentFSAL, "msg=%d-%d", w, i)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != workers*perWorker {
		t.Fatalf("lines = %d, want %d", len(lines), workers*perWorker)
	}
	seen := make(map[string]bool)
	for _, line := range lines {
		if !strings.HasPrefix(line, "09/03/2025 14:02:07 epoch=") {
			t.Fatalf("interleaved line %q", line)
		}
		i := strings.LastIndex(line, ":msg=")
		if i < 0 {
			t.Fatalf("line without message %q", line)
		}
		seen[line[i:]] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("distinct records = %d, want %d", len(seen), workers*perWorker)
	}
}

func TestDisplayEmergencyContext(t *testing.T) {
	tf := newTestFacility(t, func(o *Options) { o.MaxContexts = 1 })
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	held := tf.WithThreadName(context.Background(), "holder")
	tf.Warn(context.Background(), ComponentFSAL, "no context left")
	runtime.KeepAlive(held)

	if got := tf.stderr.String(); !strings.Contains(got, "[* log emergency *] :") {
		t.Errorf("record = %q, want the emergency thread name", got)
	}

	found := false
	for _, line := range tf.syslog.Lines() {
		if strings.Contains(line, "Thread context arena exhausted") {
			found = true
		}
	}
	if !found {
		t.Errorf("arena exhaustion not reported on COMPONENT_LOG_EMERG: %q", tf.syslog.Lines())
	}
}

func TestDisplayHistory(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	ctx := tf.WithThreadName(context.Background(), "worker-1")

	tf.Display(ctx, ComponentFSAL, "main.run", LevelWarn, "disk=%d", 42)

	entries := tf.History()
	last := entries[len(entries)-1]
	if last.Component != "COMPONENT_FSAL" || last.Level != "NIV_WARN" {
		t.Errorf("entry = %+v", last)
	}
	if last.Message != "disk=42" || last.Thread != "worker-1" || last.Function != "main.run" {
		t.Errorf("entry = %+v", last)
	}
}

func TestShortFuncName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/smazurov/complog/internal/logging.(*Facility).Warn", "logging.(*Facility).Warn"},
		{"main.main", "main.main"},
	}
	for _, tt := range tests {
		if got := shortFuncName(tt.in); got != tt.want {
			t.Errorf("shortFuncName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayConstantFormat(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}

	tf.Warn(context.Background(), ComponentFSAL, "100%% done")

	if got := tf.stderr.String(); !strings.HasSuffix(got, ":100% done\n") {
		t.Errorf("record = %q, want suffix %q", got, ":100% done\n")
	}
}

func TestDisplayClampsLevel(t *testing.T) {
	tf := newTestFacility(t)
	if err := tf.SetDestination(ComponentFSAL, "STDERR"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.SetComponentLevel(ComponentDebugInfo, LevelCrit)

	tf.Display(context.Background(), ComponentFSAL, "f", Level(-3), "below the table")
	got := tf.stderr.String()
	if !strings.Contains(got, "below the table\n") {
		t.Errorf("record = %q, want it dispatched as NIV_NULL", got)
	}
	if strings.Contains(got, "DEBUG INFO") {
		t.Errorf("record below the table was enriched:\n%s", got)
	}

	tf.stderr.Reset()
	tf.Display(context.Background(), ComponentFSAL, "f", Level(42), "above the table")
	if tf.stderr.Len() != 0 {
		t.Errorf("record above the table passed an EVENT threshold: %q", tf.stderr.String())
	}

	tf.SetComponentLevel(ComponentFSAL, LevelFullDebug)
	tf.Display(context.Background(), ComponentFSAL, "f", Level(42), "above the table")
	if !strings.Contains(tf.stderr.String(), "above the table\n") {
		t.Errorf("record = %q, want it dispatched as NIV_FULL_DEBUG", tf.stderr.String())
	}
}

func TestDisplayFileShortWrite(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /dev/full")
	}
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("needs /dev/full")
	}

	tf := newTestFacility(t, func(o *Options) { o.LockFiles = false })
	tf.components[ComponentFSAL].destination.Store(&Destination{Kind: DestFile, Path: "/dev/full"})
	syslogBefore := len(tf.syslog.Lines())

	const notice = "Error: couldn't complete write to the log file, ensure disk has not filled up\n"

	tf.Warn(context.Background(), ComponentFSAL, "first")
	if got := tf.stderr.String(); got != notice {
		t.Errorf("stderr = %q, want %q", got, notice)
	}
	if tf.openFiles.Load() != 0 {
		t.Errorf("open log files = %d, want 0", tf.openFiles.Load())
	}
	if got := len(tf.syslog.Lines()); got != syslogBefore {
		t.Errorf("short write was logged through the facility: %d new syslog lines", got-syslogBefore)
	}

	tf.stderr.Reset()
	tf.Warn(context.Background(), ComponentFSAL, "second")
	if got := tf.stderr.String(); got != notice {
		t.Errorf("stderr after second record = %q, want %q", got, notice)
	}
}
