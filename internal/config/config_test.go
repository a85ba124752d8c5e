package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

type serveOptions struct {
	Config string

	Port            int           `toml:"server.port" env:"PORT"`
	Host            string        `toml:"server.host" env:"HOST"`
	MetricsEnabled  bool          `toml:"metrics.enabled" env:"METRICS_ENABLED"`
	ShutdownTimeout time.Duration `toml:"server.shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	Families        []string      `toml:"errors.families" env:"ERROR_FAMILIES"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000
host = "127.0.0.1"
shutdown_timeout = "3s"

[metrics]
enabled = true

[errors]
families = ["nfs", "rpc"]
`)

	opts := &serveOptions{Config: path, Port: 8090}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := serveOptions{
		Config:          path,
		Port:            9000,
		Host:            "127.0.0.1",
		MetricsEnabled:  true,
		ShutdownTimeout: 3 * time.Second,
		Families:        []string{"nfs", "rpc"},
	}
	if !reflect.DeepEqual(*opts, want) {
		t.Errorf("LoadConfig() = %+v, want %+v", *opts, want)
	}
}

func TestLoadConfigEnvOverridesToml(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9000\nhost = \"file\"\n")

	t.Setenv("COMPLOG_PORT", "9100")
	t.Setenv("COMPLOG_SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("COMPLOG_ERROR_FAMILIES", " nfs , 9p ")

	opts := &serveOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if opts.Port != 9100 {
		t.Errorf("Port = %d, want 9100", opts.Port)
	}
	if opts.Host != "file" {
		t.Errorf("Host = %q, want %q", opts.Host, "file")
	}
	if opts.ShutdownTimeout != 250*time.Millisecond {
		t.Errorf("ShutdownTimeout = %v, want 250ms", opts.ShutdownTimeout)
	}
	if want := []string{"nfs", "9p"}; !reflect.DeepEqual(opts.Families, want) {
		t.Errorf("Families = %v, want %v", opts.Families, want)
	}
}

func TestLoadConfigCLIWins(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9000\nhost = \"file\"\n")
	t.Setenv("COMPLOG_HOST", "env")

	opts := &serveOptions{Config: path}
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().IntVar(&opts.Port, "port", 8090, "")
	cmd.Flags().StringVar(&opts.Host, "host", "", "")
	if err := cmd.Flags().Parse([]string{"--port=7000", "--host=cli"}); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if opts.Port != 7000 {
		t.Errorf("Port = %d, want 7000", opts.Port)
	}
	if opts.Host != "cli" {
		t.Errorf("Host = %q, want %q", opts.Host, "cli")
	}
}

func TestLoadConfigBadEnvValue(t *testing.T) {
	t.Setenv("COMPLOG_PORT", "eighty")
	t.Setenv("COMPLOG_METRICS_ENABLED", "sometimes")

	opts := &serveOptions{Port: 8090}
	err := LoadConfig(opts, nil)
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want parse errors")
	}
	if opts.Port != 8090 {
		t.Errorf("Port = %d, want the default 8090 kept", opts.Port)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	opts := &serveOptions{Config: filepath.Join(t.TempDir(), "absent.toml")}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for a missing file", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[server\ninvalid toml syntax\n")
	if err := LoadConfig(&serveOptions{Config: path}, nil); err == nil {
		t.Fatal("LoadConfig() error = nil, want a parse error")
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"log": map[string]any{
			"destinations": map[string]any{"NLM": "STDERR"},
			"destination":  "SYSLOG",
		},
		"root": "root_value",
	}

	tests := []struct {
		path string
		want any
	}{
		{"root", "root_value"},
		{"log.destination", "SYSLOG"},
		{"log.destinations.NLM", "STDERR"},
		{"missing", nil},
		{"log.missing", nil},
		{"root.child", nil},
	}

	for _, tt := range tests {
		if got := getNestedValue(data, tt.path); got != tt.want {
			t.Errorf("getNestedValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Port":            "port",
		"MetricsEnabled":  "metrics-enabled",
		"ShutdownTimeout": "shutdown-timeout",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}
