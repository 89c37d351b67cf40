package utils

import (
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Field is a named form value checked by RequireFields.
type Field struct {
	Name  string
	Value string
}

// RequireFields returns a ValidationError for the first field whose value is
// empty after trimming whitespace.
func RequireFields(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &ValidationError{Field: f.Name, Message: f.Name + " is required"}
		}
	}
	return nil
}

// IsDigits reports whether s is non-empty and made only of ASCII decimal digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
