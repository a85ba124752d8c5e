package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/smazurov/complog/cmd"
	"github.com/smazurov/complog/internal/api"
	"github.com/smazurov/complog/internal/config"
	"github.com/smazurov/complog/internal/events"
	"github.com/smazurov/complog/internal/logging"
	"github.com/smazurov/complog/internal/metrics/collectors"
	"github.com/smazurov/complog/internal/metrics/exporters"
	"github.com/smazurov/complog/internal/systemd"
)

// Options for the CLI - flat structure with toml mapping. Component levels
// and destinations live in the [log] block of the same file.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port            string        `help:"Address to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests" default:"5s" toml:"server.shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Facility settings
	ProgramName string `help:"Program name printed in record prefixes" default:"complog" toml:"facility.program_name" env:"PROGRAM_NAME"`
	MaxContexts int    `help:"Maximum live thread contexts, 0 for unlimited" default:"4096" toml:"facility.max_contexts" env:"MAX_CONTEXTS"`
	WatchConfig bool   `help:"Re-apply the [log] block when the config file changes" default:"true" toml:"facility.watch_config" env:"WATCH_CONFIG"`

	// Metrics settings
	MetricsEnabled  bool          `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`
	MetricsInterval time.Duration `help:"Facility gauge sampling interval" default:"5s" toml:"metrics.interval" env:"METRICS_INTERVAL"`

	// Systemd settings
	SystemdUnit string `help:"Unit whose state /api/systemd/status reports, empty to disable" default:"" toml:"systemd.unit" env:"SYSTEMD_UNIT"`
	SystemdUser bool   `help:"Use the user bus for unit status" default:"false" toml:"systemd.user" env:"SYSTEMD_USER"`
}

// newFacility builds the process facility from the [log] block, then
// applies environment pins and configured levels, in that order.
func newFacility(opts *Options, bus *events.Bus) (*logging.Facility, error) {
	logCfg, err := config.LoadLogConfig(opts.Config)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}

	fopts := logging.DefaultOptions()
	fopts.Bus = bus
	fopts.MaxContexts = opts.MaxContexts
	if logCfg.LockFiles != nil {
		fopts.LockFiles = *logCfg.LockFiles
	}
	if logCfg.HistorySize > 0 {
		fopts.HistorySize = logCfg.HistorySize
	}

	f := logging.New(fopts)
	if opts.ProgramName != "" {
		f.SetNameProgram(opts.ProgramName)
	}
	f.ReadEnvironment()
	if _, applyErr := config.ApplyLogConfig(f, logCfg); applyErr != nil {
		err = errors.Join(err, applyErr)
	}
	return f, err
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		loadErr := config.LoadConfig(opts, cli.Root())

		eventBus := events.New()
		facility, logErr := newFacility(opts, eventBus)
		logging.SetDefault(facility)

		logger := logging.GetLogger("main")
		if loadErr != nil {
			logger.Warn("Failed to load config", "error", loadErr)
		}
		if logErr != nil {
			logger.Warn("Log configuration applied with errors", "path", opts.Config, "error", logErr)
		}

		notifier := systemd.NewNotifier()
		facility.RegisterCleanup(func() {
			_, _ = notifier.Stopping()
		})

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Facility:     facility,
			EventBus:     eventBus,
			SystemdUnit:  opts.SystemdUnit,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}

		var (
			server    *api.Server
			watcher   *config.Watcher[config.LogConfig]
			collector *collectors.FacilityCollector
			units     *systemd.Manager
			cancel    context.CancelFunc = func() {}
		)

		hooks.OnStart(func() {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			if opts.SystemdUnit != "" {
				mgr, err := systemd.NewManager(ctx, opts.SystemdUser)
				if err != nil {
					logger.Warn("Unit status disabled", "unit", opts.SystemdUnit, "error", err)
				} else {
					units = mgr
					apiOpts.Systemd = mgr
				}
			}
			server = api.NewServer(apiOpts)

			if opts.WatchConfig && opts.Config != "" {
				if _, err := os.Stat(opts.Config); err == nil {
					w, err := config.WatchLogConfig(opts.Config, facility, logging.GetLogger("config"))
					if err != nil {
						logger.Warn("Config watcher disabled", "error", err)
					} else {
						watcher = w
						w.OnReload(func(config.LogConfig) {
							_, _ = notifier.Status("configuration reloaded")
						})
					}
				}
			}

			if opts.MetricsEnabled {
				collector = collectors.NewFacilityCollector(facility, opts.MetricsInterval)
				_ = collector.Start(ctx)
			}

			ln, err := net.Listen("tcp", opts.Port)
			if err != nil {
				facility.Fatal(ctx, logging.ComponentMain, "Could not listen on %s: %v", opts.Port, err)
				return
			}

			go func() {
				if err := notifier.RunWatchdog(ctx); err != nil {
					logger.Warn("Watchdog stopped", "error", err)
				}
			}()
			if _, err := notifier.Ready(); err != nil {
				logger.Warn("Failed to notify systemd", "error", err)
			}

			if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				facility.Fatal(ctx, logging.ComponentMain, "HTTP server failed: %v", err)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			_, _ = notifier.Stopping()

			ctx, done := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
			defer done()
			if server != nil {
				if err := server.Stop(ctx); err != nil {
					logger.Error("Error stopping HTTP server", "error", err)
				}
			}
			if watcher != nil {
				_ = watcher.Stop()
			}
			if collector != nil {
				_ = collector.Stop()
			}
			if units != nil {
				units.Close()
			}
			cancel()
			facility.Cleanup()
		})
	})

	cli.Root().Use = "complog"
	cli.Root().Short = "Component-leveled diagnostic logging facility"

	cli.Root().AddCommand(cmd.CreateEmitCmd(logging.Default))
	cli.Root().AddCommand(cmd.CreateLevelsCmd(logging.Default))
	cli.Root().AddCommand(cmd.CreateErrorsCmd(logging.Default))

	cli.Run()
}
