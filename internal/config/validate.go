package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

var validSSLModes = map[string]struct{}{
	"disable": {}, "require": {}, "verify-ca": {}, "verify-full": {},
}

// Validate checks the configuration and returns errors (fatal) and warnings
// (non-fatal issues).
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}
	c.Database.validate(result)
	c.Server.validate(result)
	c.Logging.validate(result)
	return result
}

func (d *DatabaseConfig) validate(result *ValidationResult) {
	if d.DSN != "" {
		return
	}
	if d.Host == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.host",
			Message: "host is required when no DSN is configured",
		})
	}
	if d.Port < 1 || d.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.port",
			Message: fmt.Sprintf("port %d is out of range", d.Port),
		})
	}
	if d.Database == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.database",
			Message: "database name is required when no DSN is configured",
		})
	}
	if _, ok := validSSLModes[d.SSLMode]; !ok {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "database.sslmode",
			Message: fmt.Sprintf("unknown sslmode %q", d.SSLMode),
			Hint:    "use disable, require, verify-ca, or verify-full",
		})
	}
	if d.SSLMode == "disable" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "database.sslmode",
			Message: "TLS is disabled for the database connection",
		})
	}
	if d.Password == "" && d.PasswordFile == "" {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "database.password",
			Message: "no password configured",
			Hint:    "set database.password_file to avoid plaintext passwords",
		})
	}
	if d.Pool.MaxIdle > d.Pool.MaxOpen {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   "database.pool.max_idle",
			Message: "max_idle exceeds max_open and will be capped by database/sql",
		})
	}
}

func (s *ServerConfig) validate(result *ValidationResult) {
	if s.Port < 1 || s.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d is out of range", s.Port),
		})
	}
	if s.RateLimitEnabled && (s.RateLimitRPS <= 0 || s.RateLimitBurst <= 0) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.rate_limit_rps",
			Message: "rate limiting is enabled but rps or burst is not positive",
		})
	}
}

func (l *LoggingConfig) validate(result *ValidationResult) {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", l.Level),
			Hint:    "use debug, info, warn, or error",
		})
	}
	switch l.Format {
	case "json", "text":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", l.Format),
			Hint:    "use json or text",
		})
	}
}
