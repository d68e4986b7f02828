// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-task-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as session lifetime and
	// the password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Client holds settings used only by the taskctl command-line client.
	Client Client `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control session
// lifecycle and credential hashing.
type App struct {
	// SessionTTL specifies how long an authenticated session remains valid
	// after sign-in (e.g. "12h", "30m"). An expired session is treated
	// identically to a missing one.
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// BCryptCost is the bcrypt cost factor used when hashing passwords at
	// registration. Zero selects the library default.
	// Env: APP_BCRYPT_COST
	BCryptCost int `env:"BCRYPT_COST"`

	// SecureCookies marks the session cookie as Secure, restricting it to
	// HTTPS transports. Disabled by default for local development.
	// Env: APP_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the persistence backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A "postgres://" (or
	// "postgresql://") scheme selects the PostgreSQL backend; any other
	// value is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Client holds configuration for the taskctl command-line client.
type Client struct {
	// ServerURL is the base URL of the task-keeper server the client talks
	// to (e.g. "http://localhost:8080"). When empty, the client falls back
	// to the server listen address from [Server].
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// StateFile is the path of the file where the client persists its
	// session token between invocations. When empty, a default under the
	// user's home directory is used.
	// Env: CLIENT_STATE_FILE
	StateFile string `env:"STATE_FILE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval controls how often the session sweeper deletes expired
	// session rows. Zero disables the sweeper.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Defaults applied by [StructuredConfig.validate] when the merged
// configuration leaves a field unset.
const (
	DefaultHTTPAddress   = "localhost:8080"
	DefaultSessionTTL    = 12 * time.Hour
	DefaultSweepInterval = 10 * time.Minute
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
