// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setCredentials sets the three required Zetta credentials.
func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("ZETTA_API_KEY", "test-api-key")
	t.Setenv("ZETTA_USERNAME", "operator")
	t.Setenv("ZETTA_PASSWORD", "secret")
}

// isolate clears variables that could leak in from the developer's shell.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for env := range envMappings {
		name := strings.ToUpper(env)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	setCredentials(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Zetta.Host != DefaultHost {
		t.Errorf("Zetta.Host = %q, want %q", cfg.Zetta.Host, DefaultHost)
	}
	if cfg.Zetta.Port != DefaultPort {
		t.Errorf("Zetta.Port = %d, want %d", cfg.Zetta.Port, DefaultPort)
	}
	if cfg.Zetta.Scheme != "http" {
		t.Errorf("Zetta.Scheme = %q, want http", cfg.Zetta.Scheme)
	}
	if cfg.Zetta.APIVersion != "1.0" {
		t.Errorf("Zetta.APIVersion = %q, want 1.0", cfg.Zetta.APIVersion)
	}
	if cfg.Zetta.Timeout != 5*time.Second {
		t.Errorf("Zetta.Timeout = %v, want 5s", cfg.Zetta.Timeout)
	}
	if cfg.Zetta.CircuitBreaker {
		t.Error("Zetta.CircuitBreaker should default to false")
	}
	if cfg.Poll.BatchSize != 25 {
		t.Errorf("Poll.BatchSize = %d, want 25", cfg.Poll.BatchSize)
	}
	if cfg.Poll.MaxWorkers != 0 {
		t.Errorf("Poll.MaxWorkers = %d, want 0", cfg.Poll.MaxWorkers)
	}
	if cfg.Poll.Interval != time.Minute {
		t.Errorf("Poll.Interval = %v, want 1m", cfg.Poll.Interval)
	}
	if cfg.Server.Port != 9139 || !cfg.Server.Enabled {
		t.Errorf("Server = %+v, want enabled on 9139", cfg.Server)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"api key", "ZETTA_API_KEY"},
		{"username", "ZETTA_USERNAME"},
		{"password", "ZETTA_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			setCredentials(t)
			os.Unsetenv(tt.missing)

			cfg, err := Load("")
			if err == nil {
				t.Fatal("expected error for missing credential")
			}
			if cfg != nil {
				t.Error("expected nil config on error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	setCredentials(t)
	t.Setenv("ZETTA_HOST", "zetta01.example.net")
	t.Setenv("ZETTA_PORT", "8443")
	t.Setenv("ZETTA_SCHEME", "https")
	t.Setenv("ZETTA_TIMEOUT", "2s")
	t.Setenv("ZETTA_REQUESTS_PER_SECOND", "7.5")
	t.Setenv("ZETTA_CIRCUIT_BREAKER", "true")
	t.Setenv("POLL_BATCH_SIZE", "10")
	t.Setenv("POLL_MAX_WORKERS", "4")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Zetta.Host != "zetta01.example.net" || cfg.Zetta.Port != 8443 || cfg.Zetta.Scheme != "https" {
		t.Errorf("Zetta endpoint = %s:%d (%s)", cfg.Zetta.Host, cfg.Zetta.Port, cfg.Zetta.Scheme)
	}
	if cfg.Zetta.Timeout != 2*time.Second {
		t.Errorf("Zetta.Timeout = %v, want 2s", cfg.Zetta.Timeout)
	}
	if cfg.Zetta.RequestsPerSecond != 7.5 {
		t.Errorf("Zetta.RequestsPerSecond = %v, want 7.5", cfg.Zetta.RequestsPerSecond)
	}
	if !cfg.Zetta.CircuitBreaker {
		t.Error("Zetta.CircuitBreaker should be true")
	}
	if cfg.Poll.BatchSize != 10 || cfg.Poll.MaxWorkers != 4 || cfg.Poll.Interval != 30*time.Second {
		t.Errorf("Poll = %+v", cfg.Poll)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)
	path := writeConfigFile(t, `
zetta:
  host: 10.0.0.5
  api_key: file-key
  username: file-user
  password: file-pass
  timeout: 3s
poll:
  batch_size: 5
`)
	t.Setenv("ZETTA_USERNAME", "env-user")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Zetta.Host != "10.0.0.5" {
		t.Errorf("Zetta.Host = %q, want 10.0.0.5", cfg.Zetta.Host)
	}
	if cfg.Zetta.APIKey != "file-key" {
		t.Errorf("Zetta.APIKey = %q, want file-key", cfg.Zetta.APIKey)
	}
	if cfg.Zetta.Username != "env-user" {
		t.Errorf("env should override file, got %q", cfg.Zetta.Username)
	}
	if cfg.Zetta.Timeout != 3*time.Second {
		t.Errorf("Zetta.Timeout = %v, want 3s", cfg.Zetta.Timeout)
	}
	if cfg.Poll.BatchSize != 5 {
		t.Errorf("Poll.BatchSize = %d, want 5", cfg.Poll.BatchSize)
	}
	if cfg.Zetta.Port != DefaultPort {
		t.Errorf("unset keys keep defaults, got port %d", cfg.Zetta.Port)
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	isolate(t)
	setCredentials(t)
	path := writeConfigFile(t, "poll:\n  max_workers: 3\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Poll.MaxWorkers != 3 {
		t.Errorf("Poll.MaxWorkers = %d, want 3", cfg.Poll.MaxWorkers)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)
	setCredentials(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"scheme", "ZETTA_SCHEME", "gopher"},
		{"port", "ZETTA_PORT", "0"},
		{"batch size", "POLL_BATCH_SIZE", "0"},
		{"max workers", "POLL_MAX_WORKERS", "-1"},
		{"api version", "ZETTA_API_VERSION", "latest"},
		{"log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			setCredentials(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig for %s=%s, got %v", tt.key, tt.val, err)
			}
		})
	}
}

func TestLoadWithKoanf_SkipsValidation(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf("")
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Zetta.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Zetta.APIKey)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected Validate to reject missing credentials, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"ZETTA_API_KEY", "zetta.api_key"},
		{"zetta_host", "zetta.host"},
		{"POLL_BATCH_SIZE", "poll.batch_size"},
		{"HTTP_PORT", "server.port"},
		{"RATE_LIMIT_WINDOW", "server.rate_limit_window"},
		{"LOG_CALLER", "logging.caller"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
