// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/zetta-collector/internal/logging"
)

const (
	// DefaultHost is the Zetta Simple API host when none is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the Zetta Simple API port.
	DefaultPort = 3139

	// DefaultScheme is the URL scheme of the Simple API.
	DefaultScheme = "http"

	// DefaultAPIVersion is the version path segment of every endpoint.
	DefaultAPIVersion = "1.0"

	// DefaultRequestTimeout bounds every Simple API request.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultBatchSize is the number of stations fetched by one poll worker.
	DefaultBatchSize = 25

	// DefaultPollInterval is the service-mode cycle period.
	DefaultPollInterval = 60 * time.Second
)

// Config is the complete collector configuration.
//
// Values are layered: struct defaults, then a YAML file, then environment
// variables. See Load.
type Config struct {
	Zetta   ZettaConfig   `koanf:"zetta"`
	Poll    PollConfig    `koanf:"poll"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// ZettaConfig holds the connection settings for the Zetta Simple API.
//
// Environment Variables:
//   - ZETTA_HOST, ZETTA_PORT, ZETTA_SCHEME, ZETTA_API_VERSION
//   - ZETTA_API_KEY, ZETTA_USERNAME, ZETTA_PASSWORD (required)
//   - ZETTA_TIMEOUT (default: 5s)
//   - ZETTA_REQUESTS_PER_SECOND (default: 0, unlimited)
//   - ZETTA_CIRCUIT_BREAKER (default: false)
type ZettaConfig struct {
	Host       string `koanf:"host" validate:"required,zettahost|ip"`
	Port       int    `koanf:"port" validate:"min=1,max=65535"`
	Scheme     string `koanf:"scheme" validate:"oneof=http https"`
	APIVersion string `koanf:"api_version" validate:"apiversion"`

	// APIKey is sent in the APIKEY header of every request.
	APIKey string `koanf:"api_key" validate:"required"`

	// Username and Password are sent as HTTP basic auth.
	Username string `koanf:"username" validate:"required"`
	Password string `koanf:"password" validate:"required"`

	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RequestsPerSecond paces each session. 0 disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`

	// CircuitBreaker shares one breaker across every session of a collector.
	// Off by default. When on, only transport errors and 5xx replies count
	// against it.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// BaseURL returns {scheme}://{host}:{port}/{apiVersion}.
func (z *ZettaConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s/%s", z.Scheme, net.JoinHostPort(z.Host, strconv.Itoa(z.Port)), z.APIVersion)
}

// LogSummary logs the connection settings with credentials redacted.
func (z *ZettaConfig) LogSummary() {
	logging.Info().
		Str("base_url", z.BaseURL()).
		Str("api_key", logging.RedactSecret(z.APIKey)).
		Str("username", logging.RedactUsername(z.Username)).
		Dur("timeout", z.Timeout).
		Float64("requests_per_second", z.RequestsPerSecond).
		Bool("circuit_breaker", z.CircuitBreaker).
		Msg("[config] Zetta connection")
}

// PollConfig controls the status fan-out.
//
// Environment Variables:
//   - POLL_BATCH_SIZE (default: 25)
//   - POLL_MAX_WORKERS (default: 0, one worker per batch)
//   - POLL_INTERVAL (default: 60s, service mode only)
type PollConfig struct {
	BatchSize int `koanf:"batch_size" validate:"min=1"`

	// MaxWorkers caps concurrently running batch workers. 0 means no cap.
	// A cap lowers peak load on the Zetta server but lengthens the cycle.
	MaxWorkers int `koanf:"max_workers" validate:"gte=0"`

	Interval time.Duration `koanf:"interval" validate:"gt=0"`
}

// ServerConfig holds the HTTP API settings used in service mode.
//
// Environment Variables:
//   - HTTP_ENABLED (default: true)
//   - HTTP_HOST (default: 0.0.0.0)
//   - HTTP_PORT (default: 9139)
//   - HTTP_TIMEOUT (default: 30s)
//   - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
type ServerConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Address returns host:port for net.Listen.
func (s *ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ToLoggingConfig converts to the logging package configuration.
func (l *LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}
