package model

import "fmt"

// ParseError represents invalid input data with field context
type ParseError struct {
	Field   string
	Value   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q: %s (%v)", e.Field, e.Value, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(field, value, message string, cause error) *ParseError {
	return &ParseError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}
