package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrConfiguration indicates invalid entity or application configuration
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidKind indicates a record carries an unknown kind tag
	ErrInvalidKind = errors.New("invalid record kind")
)

// ConfigurationError describes an invalid entity registration or setting
type ConfigurationError struct {
	Field   string
	Path    string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("configuration error for %s (%s): %s", e.Field, e.Path, e.Message)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field, path, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Path:    path,
		Message: message,
	}
}

// IsConfigurationError checks if err is, or wraps, a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// WalkError wraps a directory walker failure for an entity root
type WalkError struct {
	Root string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk %s: %v", e.Root, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// NewWalkError creates a new WalkError
func NewWalkError(root string, err error) *WalkError {
	return &WalkError{
		Root: root,
		Err:  err,
	}
}
