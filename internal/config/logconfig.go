package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/smazurov/complog/internal/events"
	"github.com/smazurov/complog/internal/logging"
)

// ErrLogEntries marks per-key errors in the [log] block. The entries are
// skipped and the rest of the block still loads.
var ErrLogEntries = errors.New("invalid log config entries")

// LogConfig is the [log] block of the configuration file.
//
//	[log]
//	destination = "/var/log/complog.log"
//	lock_files = true
//	history_size = 500
//	COMPONENT_ALL = "NIV_EVENT"
//	FSAL = "NIV_DEBUG"
//
//	[log.destinations]
//	COMPONENT_NLM = "STDERR"
type LogConfig struct {
	// Destination is the default destination of every component.
	Destination string
	// LockFiles is nil when the file does not say.
	LockFiles   *bool
	HistorySize int
	// Levels lists component = level pairs, COMPONENT_ALL first and the
	// rest sorted by key.
	Levels []logging.ConfigPair
	// Destinations lists component = destination pairs sorted by key.
	Destinations []logging.ConfigPair
}

// LoadLogConfig reads the [log] block of the TOML file at path. A file
// without the block yields an empty LogConfig.
func LoadLogConfig(path string) (LogConfig, error) {
	var cfg LogConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read log config: %w", err)
	}

	var raw struct {
		Log map[string]any `toml:"log"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	var errs []error
	for key, value := range raw.Log {
		switch strings.ToLower(key) {
		case "destination":
			s, ok := value.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("log.%s: expected string, got %T", key, value))
				continue
			}
			cfg.Destination = s
		case "lock_files":
			b, ok := value.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("log.%s: expected bool, got %T", key, value))
				continue
			}
			cfg.LockFiles = &b
		case "history_size":
			n, ok := value.(int64)
			if !ok || n < 0 {
				errs = append(errs, fmt.Errorf("log.%s: expected a non-negative integer, got %v", key, value))
				continue
			}
			cfg.HistorySize = int(n)
		case "destinations":
			table, ok := value.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Errorf("log.%s: expected a table, got %T", key, value))
				continue
			}
			pairs, err := stringPairs("log.destinations", table)
			if err != nil {
				errs = append(errs, err)
			}
			cfg.Destinations = pairs
		default:
			s, ok := value.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("log.%s: expected a level name, got %T", key, value))
				continue
			}
			cfg.Levels = append(cfg.Levels, logging.ConfigPair{Key: key, Value: s})
		}
	}
	sortPairs(cfg.Levels)

	if len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %w", ErrLogEntries, errors.Join(errs...))
	}
	return cfg, nil
}

func stringPairs(section string, table map[string]any) ([]logging.ConfigPair, error) {
	var errs []error
	pairs := make([]logging.ConfigPair, 0, len(table))
	for key, value := range table {
		s, ok := value.(string)
		if !ok {
			errs = append(errs, fmt.Errorf("%s.%s: expected string, got %T", section, key, value))
			continue
		}
		pairs = append(pairs, logging.ConfigPair{Key: key, Value: s})
	}
	sortPairs(pairs)
	return pairs, errors.Join(errs...)
}

// sortPairs orders pairs so that COMPONENT_ALL is applied before the
// components it would otherwise override.
func sortPairs(pairs []logging.ConfigPair) {
	isAll := func(key string) bool {
		c, ok := logging.ComponentByName(key)
		return ok && c == logging.ComponentAll
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ai, aj := isAll(pairs[i].Key), isAll(pairs[j].Key)
		if ai != aj {
			return ai
		}
		return pairs[i].Key < pairs[j].Key
	})
}

// ApplyLogConfig applies cfg to f: the default destination first, then the
// per component destinations, then the levels. It returns the number of
// levels applied.
func ApplyLogConfig(f *logging.Facility, cfg LogConfig) (int, error) {
	var errs []error
	if cfg.Destination != "" {
		if err := f.SetDefaultDestination(cfg.Destination); err != nil {
			errs = append(errs, fmt.Errorf("log.destination: %w", err))
		}
	}
	for _, p := range cfg.Destinations {
		comp, ok := logging.ComponentByName(p.Key)
		if !ok {
			errs = append(errs, fmt.Errorf("log.destinations.%s: %w", p.Key, logging.ErrUnknownComponent))
			continue
		}
		if err := f.SetDestination(comp, p.Value); err != nil {
			errs = append(errs, fmt.Errorf("log.destinations.%s: %w", p.Key, err))
		}
	}
	applied := f.ApplyConfig(cfg.Levels)
	return applied, errors.Join(errs...)
}

// WatchLogConfig re-applies the [log] block of path to f whenever the file
// changes. The returned watcher is already started.
func WatchLogConfig(path string, f *logging.Facility, logger *slog.Logger, opts ...WatcherOption[LogConfig]) (*Watcher[LogConfig], error) {
	load := func(path string) (LogConfig, error) {
		cfg, err := LoadLogConfig(path)
		if errors.Is(err, ErrLogEntries) {
			logger.Warn("Skipping invalid log config entries", "path", path, "error", err)
			return cfg, nil
		}
		return cfg, err
	}
	w := NewConfigWatcher(path, load, logger, opts...)
	w.OnReload(func(cfg LogConfig) {
		applied, err := ApplyLogConfig(f, cfg)
		if err != nil {
			logger.Warn("Log config applied with errors", "path", path, "error", err)
		}
		if bus := f.Bus(); bus != nil {
			bus.Publish(events.ConfigReloadedEvent{
				Path:      path,
				Applied:   applied,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}
	})
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("watch log config: %w", err)
	}
	return w, nil
}
