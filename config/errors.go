package config

import (
	"errors"
	"fmt"
)

// Errors for configuration file loading.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigMalformed = errors.New("config file must be valid JSON")
	ErrInvalidField    = errors.New("invalid config field")
)

// FieldError describes a recognized config file key whose value was dropped.
type FieldError struct {
	Field  string
	Value  string // raw JSON text of the rejected value
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s in config: %s: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}
