package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smazurov/complog/internal/events"
	"github.com/smazurov/complog/internal/logging"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nFSAL = \"NIV_INFO\"\n")

	received := make(chan LogConfig, 1)
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](50*time.Millisecond))
	watcher.OnReload(func(cfg LogConfig) { received <- cfg })

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[log]\nFSAL = \"NIV_DEBUG\"\n")

	select {
	case cfg := <-received:
		if len(cfg.Levels) != 1 || cfg.Levels[0].Value != "NIV_DEBUG" {
			t.Errorf("Levels = %+v, want FSAL = NIV_DEBUG", cfg.Levels)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestConfigWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	var calls atomic.Int32
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](200*time.Millisecond))
	watcher.OnReload(func(LogConfig) { calls.Add(1) })

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	for _, level := range []string{"NIV_INFO", "NIV_DEBUG", "NIV_FULL_DEBUG"} {
		writeFile(t, path, "[log]\nNLM = \""+level+"\"\n")
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(600 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}

func TestConfigWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	var first, second atomic.Int32
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](50*time.Millisecond))
	unsub := watcher.OnReload(func(LogConfig) { first.Add(1) })
	done := make(chan struct{}, 1)
	watcher.OnReload(func(LogConfig) {
		second.Add(1)
		done <- struct{}{}
	})
	unsub()

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[log]\nMAIN = \"NIV_INFO\"\n")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
	if first.Load() != 0 {
		t.Error("unsubscribed handler was called")
	}
	if second.Load() != 1 {
		t.Errorf("second handler calls = %d, want 1", second.Load())
	}
}

func TestConfigWatcher_ErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	errCh := make(chan error, 1)
	var reloads atomic.Int32
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](50*time.Millisecond),
		WithErrorHandler[LogConfig](func(err error) { errCh <- err }))
	watcher.OnReload(func(LogConfig) { reloads.Add(1) })

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[log\nbroken")

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("expected a parse error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
	if reloads.Load() != 0 {
		t.Error("handlers ran for a config that failed to load")
	}
}

func TestConfigWatcher_Rename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[log]\n")

	received := make(chan LogConfig, 4)
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](50*time.Millisecond))
	watcher.OnReload(func(cfg LogConfig) { received <- cfg })

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	// save the way editors do: write a temp file, rename it over the original
	tmp := filepath.Join(dir, "config.toml.swp")
	writeFile(t, tmp, "[log]\ndestination = \"STDERR\"\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-received:
		if cfg.Destination != "STDERR" {
			t.Errorf("Destination = %q, want STDERR", cfg.Destination)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after rename")
	}

	writeFile(t, path, "[log]\ndestination = \"STDOUT\"\n")
	select {
	case cfg := <-received:
		if cfg.Destination != "STDOUT" {
			t.Errorf("Destination = %q, want STDOUT", cfg.Destination)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch was not re-established after rename")
	}
}

func TestConfigWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	var calls atomic.Int32
	watcher := NewConfigWatcher(path, LoadLogConfig, newTestLogger(),
		WithDebounce[LogConfig](50*time.Millisecond))
	watcher.OnReload(func(LogConfig) { calls.Add(1) })

	if err := watcher.Start(); err != nil {
		t.Fatal(err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	writeFile(t, path, "[log]\nMAIN = \"NIV_INFO\"\n")
	time.Sleep(200 * time.Millisecond)

	if calls.Load() != 0 {
		t.Error("handler called after Stop")
	}
}

func TestWatchLogConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	bus := events.New()
	var stdout bytes.Buffer
	f := logging.New(logging.Options{
		ProgramName: "prog",
		HostName:    "host",
		Stdout:      &stdout,
		Stderr:      &stdout,
		Bus:         bus,
		Exit:        func(int) {},
		SystemLog:   discardSystemLog{},
	})

	reloaded := make(chan events.ConfigReloadedEvent, 1)
	unsub := bus.Subscribe(func(e events.ConfigReloadedEvent) { reloaded <- e })
	defer unsub()

	watcher, err := WatchLogConfig(path, f, newTestLogger(), WithDebounce[LogConfig](50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[log]\nCOMPONENT_FSAL = \"NIV_FULL_DEBUG\"\nNLM = \"NIV_WARN\"\n")

	select {
	case e := <-reloaded:
		if e.Applied != 2 || e.Path != path {
			t.Errorf("ConfigReloadedEvent = %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for ConfigReloadedEvent")
	}

	if got := f.Level(logging.ComponentFSAL); got != logging.LevelFullDebug {
		t.Errorf("Level(FSAL) = %v, want %v", got, logging.LevelFullDebug)
	}
	if got := f.Level(logging.ComponentNLM); got != logging.LevelWarn {
		t.Errorf("Level(NLM) = %v, want %v", got, logging.LevelWarn)
	}
}

func TestWatchLogConfigSkipsBadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\n")

	bus := events.New()
	var stdout bytes.Buffer
	f := logging.New(logging.Options{
		ProgramName: "prog",
		HostName:    "host",
		Stdout:      &stdout,
		Stderr:      &stdout,
		Bus:         bus,
		Exit:        func(int) {},
		SystemLog:   discardSystemLog{},
	})

	reloaded := make(chan events.ConfigReloadedEvent, 1)
	unsub := bus.Subscribe(func(e events.ConfigReloadedEvent) { reloaded <- e })
	defer unsub()

	watcher, err := WatchLogConfig(path, f, newTestLogger(), WithDebounce[LogConfig](50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Stop()

	writeFile(t, path, "[log]\nFSAL = 5\nNLM = \"NIV_WARN\"\n")

	select {
	case e := <-reloaded:
		if e.Applied != 1 {
			t.Errorf("Applied = %d, want 1", e.Applied)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for ConfigReloadedEvent")
	}

	if got := f.Level(logging.ComponentNLM); got != logging.LevelWarn {
		t.Errorf("Level(NLM) = %v, want %v", got, logging.LevelWarn)
	}
	if got := f.Level(logging.ComponentFSAL); got != logging.LevelEvent {
		t.Errorf("Level(FSAL) = %v, want %v", got, logging.LevelEvent)
	}
}
