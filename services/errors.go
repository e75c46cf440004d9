package services

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors let controllers map service failures to HTTP outcomes in one
// place. Authorization failures stay generic so responses never leak whether
// a resource exists or who owns it.
var (
	ErrForbidden = errors.New("access denied")
	ErrNotFound  = errors.New("not found")
)

// ValidationError carries field-to-message pairs collected before reporting.
// The completeness check never fails fast: every missing item is listed.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Details[k])
	}
	return strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: map[string]string{field: message}}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
