package frame

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when an operation names a column the table
// does not contain. Callers match it with errors.Is.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFound wraps ErrColumnNotFound with the offending name.
func ColumnNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// ConfigError reports an invalid parameter on a call. It is validated and
// returned before any data is touched; the table is never partially mutated
// by a call that returns a ConfigError.
type ConfigError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// NewConfigError creates a ConfigError for the given parameter.
func NewConfigError(param, reason string) *ConfigError {
	return &ConfigError{Param: param, Reason: reason}
}
