package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnsupportedCurrency is returned for currency codes outside the rate table.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrUnknownCountry is returned when no shipping config matches a country.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrInvalidInput marks a request rejected by validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigurationError reports an unknown currency or country code that reached a
// function requiring a valid one. Callers fall back to a documented default.
type ConfigurationError struct {
	Kind  string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: unknown %s %q", e.Kind, e.Value)
}

func (e *ConfigurationError) Unwrap() error {
	switch e.Kind {
	case "currency":
		return ErrUnsupportedCurrency
	case "country":
		return ErrUnknownCountry
	default:
		return nil
	}
}

// PersistenceError wraps a serialization or storage failure for a persisted blob.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationSkip describes a cart line excluded from aggregates.
type ValidationSkip struct {
	LineID string
	Reason string
}

func (v ValidationSkip) Error() string {
	return fmt.Sprintf("line %s skipped: %s", v.LineID, v.Reason)
}
