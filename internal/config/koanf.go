// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/zetta-collector/config.yaml",
	"/etc/zetta-collector/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak into config.
var envMappings = map[string]string{
	"zetta_host":                "zetta.host",
	"zetta_port":                "zetta.port",
	"zetta_scheme":              "zetta.scheme",
	"zetta_api_version":         "zetta.api_version",
	"zetta_api_key":             "zetta.api_key",
	"zetta_username":            "zetta.username",
	"zetta_password":            "zetta.password",
	"zetta_timeout":             "zetta.timeout",
	"zetta_requests_per_second": "zetta.requests_per_second",
	"zetta_circuit_breaker":     "zetta.circuit_breaker",

	"poll_batch_size":  "poll.batch_size",
	"poll_max_workers": "poll.max_workers",
	"poll_interval":    "poll.interval",

	"http_enabled":        "server.enabled",
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Zetta: ZettaConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			Scheme:            DefaultScheme,
			APIVersion:        DefaultAPIVersion,
			Timeout:           DefaultRequestTimeout,
			RequestsPerSecond: 0,
			CircuitBreaker:    false,
		},
		Poll: PollConfig{
			BatchSize:  DefaultBatchSize,
			MaxWorkers: 0,
			Interval:   DefaultPollInterval,
		},
		Server: ServerConfig{
			Enabled:           true,
			Host:              "0.0.0.0",
			Port:              9139,
			Timeout:           30 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, then validates it. An explicit path takes precedence over
// CONFIG_PATH and DefaultConfigPaths; a missing explicit path is an error.
//
//	cfg, err := config.Load("")
//	if errors.Is(err, config.ErrInvalidConfig) { ... }
func Load(path string) (*Config, error) {
	cfg, err := LoadWithKoanf(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithKoanf performs the layered load without validation.
// Callers that patch values afterwards (e.g. a -host flag) validate themselves.
func LoadWithKoanf(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: config file %s: %w", ErrInvalidConfig, explicit, err)
		}
		return explicit, nil
	}
	return findConfigFile(), nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - ZETTA_API_KEY -> zetta.api_key
//   - POLL_BATCH_SIZE -> poll.batch_size
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
