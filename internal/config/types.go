// Package config loads and validates the server configuration from flags,
// environment variables, and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PoolConfig holds connection pool parameters.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// DSN is a complete lib/pq connection string. When set, it overrides the
	// discrete fields below.
	DSN string `mapstructure:"dsn"`
	// DSNFile is a path to a file containing the DSN (for secrets management).
	DSNFile string `mapstructure:"dsn_file"`

	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	PasswordFile string `mapstructure:"password_file"`
	Database     string `mapstructure:"database"`
	// SSLMode is passed through to lib/pq: disable, require, verify-ca,
	// verify-full.
	SSLMode string `mapstructure:"sslmode"`

	Pool PoolConfig `mapstructure:"pool"`

	// ConnectTimeout is the max time to wait for the startup ping.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// ConnString returns the lib/pq connection string, preferring an explicit DSN
// over the discrete fields.
func (d *DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	parts := []string{
		fmt.Sprintf("host=%s", d.Host),
		fmt.Sprintf("port=%d", d.Port),
		fmt.Sprintf("user=%s", d.User),
		fmt.Sprintf("dbname=%s", d.Database),
		fmt.Sprintf("sslmode=%s", d.SSLMode),
	}
	if d.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", d.Password))
	}
	return strings.Join(parts, " ")
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port             int           `mapstructure:"port"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitEnabled bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRPS     float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst   int           `mapstructure:"rate_limit_burst"`
	CORSEnabled      bool          `mapstructure:"cors_enabled"`
	CORSOrigins      []string      `mapstructure:"cors_allowed_origins"`
	CORSMethods      []string      `mapstructure:"cors_allowed_methods"`
	CORSHeaders      []string      `mapstructure:"cors_allowed_headers"`
	CORSMaxAge       int           `mapstructure:"cors_max_age"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}
