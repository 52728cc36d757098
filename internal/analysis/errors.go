package analysis

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrValidation marks malformed input records rejected at the boundary.
// Sparse data is never a validation error; it degrades to the
// INSUFFICIENT_DATA pattern instead.
var ErrValidation = errors.New("validation failed")

// ErrPersistence marks a failed write to the pattern store. The analysis
// itself is deterministic and cheap, so retry policy is left to the caller.
var ErrPersistence = errors.New("persistence failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)

// ValidateSymbol checks the ticker format: uppercase, 1 to 5 alphanumerics.
func ValidateSymbol(symbol string) error {
	if !symbolPattern.MatchString(symbol) {
		return &ValidationError{Field: "symbol", Reason: fmt.Sprintf("%q is not an uppercase 1-5 char ticker", symbol)}
	}
	return nil
}
