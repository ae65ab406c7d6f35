package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leefowlercu/minreads/internal/logging"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	// Validate logging config
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.LogLevel),
		})
	}

	if cfg.LogMaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "log_max_size_mb",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.LogMaxSizeMB),
		})
	}

	if cfg.LogMaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log_max_backups",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.LogMaxBackups),
		})
	}

	if cfg.LogMaxAgeDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "log_max_age_days",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.LogMaxAgeDays),
		})
	}

	// Validate seqfu config
	if strings.TrimSpace(cfg.SeqFu.Binary) == "" {
		errs = append(errs, ValidationError{
			Field:   "seqfu.binary",
			Message: "must not be empty",
		})
	}

	if cfg.SeqFu.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "seqfu.timeout",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.SeqFu.Timeout),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
