package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/taskflow/errors"
	"github.com/kbukum/taskflow/logger"
)

type testEngine struct {
	Threshold   int           `mapstructure:"threshold"`
	MaxInFlight int           `mapstructure:"max_in_flight"`
	Delay       time.Duration `mapstructure:"delay"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Engine        testEngine `mapstructure:"engine"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.ServiceName != "svc" {
		t.Errorf("expected logging service name to be propagated, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected logging defaults to be applied, got %q", cfg.Logging.Output)
	}

	debug := ServiceConfig{Name: "svc", Debug: true}
	debug.ApplyDefaults()
	if debug.Logging.Level != "debug" {
		t.Errorf("expected debug level when debug=true, got %q", debug.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: EnvProduction}, ""},
		{"missing name", ServiceConfig{Environment: EnvProduction}, "name: is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "environment: must be one of: development staging production"},
		{"invalid log level", ServiceConfig{Name: "svc", Environment: EnvStaging, Logging: logger.Config{Level: "loud"}}, "logging.level must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if !errors.HasCode(err, errors.ErrCodeConfigInvalid) {
				t.Errorf("expected CONFIG_INVALID, got %v", err)
			}
		})
	}
}

func TestServiceConfigIsProduction(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Environment: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	cfg.Environment = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("development is not production")
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: taskflow
environment: staging
engine:
  threshold: 50
  delay: 2s
`)

	var cfg testConfig
	if err := LoadConfig("taskflow", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "taskflow" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Engine.Threshold != 50 {
		t.Errorf("expected threshold 50, got %d", cfg.Engine.Threshold)
	}
	if cfg.Engine.Delay != 2*time.Second {
		t.Errorf("expected delay 2s, got %s", cfg.Engine.Delay)
	}
}

func TestLoadConfigDefaultsAndEnvPrefix(t *testing.T) {
	t.Setenv("TASKFLOW_ENGINE_MAX_IN_FLIGHT", "64")
	t.Setenv("ENGINE_THRESHOLD", "7") // no prefix, must be ignored

	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg,
		WithFileSystem(&mockFS{}),
		WithEnvPrefix("TASKFLOW"),
		WithDefaults(map[string]any{"engine.threshold": 1000}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.Threshold != 1000 {
		t.Errorf("expected default threshold 1000, got %d", cfg.Engine.Threshold)
	}
	if cfg.Engine.MaxInFlight != 64 {
		t.Errorf("expected max_in_flight from env, got %d", cfg.Engine.MaxInFlight)
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "engine:\n  threshold: 50\n  max_in_flight: 3\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("threshold", 1000, "")
	fs.Int("max-in-flight", 0, "")
	if err := fs.Parse([]string{"--threshold=5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var cfg testConfig
	err := LoadConfig("taskflow", &cfg,
		WithConfigFile(path),
		WithFlags(fs, map[string]string{
			"threshold":     "engine.threshold",
			"max-in-flight": "engine.max_in_flight",
		}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.Threshold != 5 {
		t.Errorf("expected flag to override file, got %d", cfg.Engine.Threshold)
	}
	if cfg.Engine.MaxInFlight != 3 {
		t.Errorf("expected unset flag to keep file value, got %d", cfg.Engine.MaxInFlight)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "TASKFLOW_ENGINE_THRESHOLD=12\n")
	t.Cleanup(func() { os.Unsetenv("TASKFLOW_ENGINE_THRESHOLD") })

	var cfg testConfig
	if err := LoadConfig("taskflow", &cfg, WithEnvFile(envPath), WithEnvPrefix("TASKFLOW")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.Threshold != 12 {
		t.Errorf("expected threshold from .env, got %d", cfg.Engine.Threshold)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "engine: [unclosed\n")

	var cfg testConfig
	if err := LoadConfig("taskflow", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestResolveWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/taskflow/config.yml": true,
		".env":                      true,
	}}
	src := Resolve(fs, "taskflow", Sources{})
	if src.ConfigFile != "./cmd/taskflow/config.yml" {
		t.Errorf("expected config file at ./cmd/taskflow/config.yml, got %q", src.ConfigFile)
	}
	if src.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", src.EnvFile)
	}

	explicit := Resolve(fs, "taskflow", Sources{ConfigFile: "custom.yml"})
	if explicit.ConfigFile != "custom.yml" {
		t.Errorf("explicit file should win, got %q", explicit.ConfigFile)
	}
}

func TestEnvKeys(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"THRESHOLD", []string{"threshold"}},
		{"ENGINE_THRESHOLD", []string{"engine_threshold", "engine.threshold"}},
		{"ENGINE_MAX_IN_FLIGHT", []string{
			"engine_max_in_flight",
			"engine.max.in.flight",
			"engine.max_in_flight",
			"engine.max.in_flight",
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := envKeys(tc.name); !slices.Equal(got, tc.want) {
				t.Errorf("envKeys(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
