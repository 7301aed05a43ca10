package models

import "fmt"

// ParseError reports malformed raw instance text. Always client-attributable.
type ParseError struct {
	Format string // "json" or "dzn"
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s instance: %s", e.Format, e.Msg)
}

// ValidationError reports an instance shape/type mismatch, a schedule
// consistency violation, or an unsupported configuration value. The Field
// names the offending field or invariant so callers can surface it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
