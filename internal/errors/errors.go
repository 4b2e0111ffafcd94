// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoOpenPosition    = errors.New("no open position")
	ErrDataNotFound      = errors.New("data not found")
	ErrNoTradingData     = errors.New("no trading data available")
	ErrUnknownEventType  = errors.New("unknown index event type")
	ErrInvalidBar        = errors.New("invalid price bar")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrDatabaseError     = errors.New("database error")
)

// SignalError represents a failure inside a single signal generator.
// The aggregator drops the generator's contribution and continues with
// the remaining generators.
type SignalError struct {
	Source string
	Symbol string
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal error [%s] %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}

// NewSignalError creates a new SignalError.
func NewSignalError(source, symbol string, err error) *SignalError {
	return &SignalError{
		Source: source,
		Symbol: symbol,
		Err:    err,
	}
}

// DataError represents a data-related error for one symbol.
type DataError struct {
	Symbol  string
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s]: %s: %v", e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s]: %s", e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(symbol, message string, err error) *DataError {
	return &DataError{
		Symbol:  symbol,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
