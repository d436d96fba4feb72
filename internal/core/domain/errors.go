package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors forming the service-wide taxonomy. Handlers map these to
// HTTP statuses; everything else surfaces as a generic transaction failure.
var (
	// ErrConflict signals a unique-constraint violation (duplicate email).
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized covers missing/expired tokens and ownership mismatches.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound signals a lookup that matched no row.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports per-field failures of the payload rules. It is
// raised before any transaction is opened, so a payload that fails validation
// never reaches the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
