// Package validation collects field errors raised by services before any write.
package validation

import (
	"errors"
	"strings"
)

// ErrInvalidInput matches every *Error via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when one or more fields fail validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput
}

// Errors accumulates field errors. The zero value is ready to use.
type Errors struct {
	fields []FieldError
}

// Add records a failure for field.
func (v *Errors) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Required records field as missing when value is blank.
func (v *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// Check records message for field when ok is false.
func (v *Errors) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Err returns an *Error holding every recorded failure, or nil.
func (v *Errors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &Error{Fields: v.fields}
}

// Fields extracts the field errors from err, if it is (or wraps) an *Error.
func Fields(err error) []FieldError {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
