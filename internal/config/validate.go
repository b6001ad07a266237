package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyKey     = errors.New("setting key cannot be empty")
	ErrUnknownKey   = errors.New("unknown setting key")
	ErrInvalidScope = errors.New("scope must be 'global' or 'workspace'")
	ErrEmptyValue   = errors.New("setting value cannot be empty")
	ErrInvalidLevel = errors.New("log level must be 'debug', 'info', 'warn', or 'error'")
)

// validLogLevels is the list of accepted log level names.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateKey validates a setting key name.
func ValidateKey(key string) error {
	if key == "" {
		return &ValidationError{
			Field:   "key",
			Message: "cannot be empty",
			Err:     ErrEmptyKey,
		}
	}
	for _, k := range Keys {
		if string(k) == key {
			return nil
		}
	}
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = string(k)
	}
	return &ValidationError{
		Field:   "key",
		Value:   key,
		Message: "must be one of " + strings.Join(names, ", "),
		Err:     ErrUnknownKey,
	}
}

// ValidateValue validates a value about to be written for key.
// Existence on disk is not checked; a stale path is reported at launch.
func ValidateValue(key Key, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   string(key),
			Message: "cannot be empty (use unset to clear)",
			Err:     ErrEmptyValue,
		}
	}
	return nil
}

// ParseScope converts a scope name to a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeWorkspace:
		return ScopeWorkspace, nil
	}
	return "", invalidScope(s)
}

// ValidateLogLevel validates a log level name. Empty means the default.
func ValidateLogLevel(level string) error {
	if level == "" || validLogLevels[strings.ToLower(level)] {
		return nil
	}
	return &ValidationError{
		Field:   "log.level",
		Value:   level,
		Message: "must be debug, info, warn, or error",
		Err:     ErrInvalidLevel,
	}
}

func invalidScope(s string) error {
	return &ValidationError{
		Field:   "scope",
		Value:   s,
		Message: "must be global or workspace",
		Err:     ErrInvalidScope,
	}
}
