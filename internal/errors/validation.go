package errors

import (
	"fmt"
	"slices"
	"strings"
)

// FieldError is one failed check on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationBuilder collects field errors in the order they were found.
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("session_id", req.SessionID, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
type ValidationBuilder struct {
	fields []FieldError
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields = append(vb.fields, FieldError{Field: field, Message: message})
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns nil when nothing failed, otherwise an InvalidArgument error
// listing every field. The individual failures are in the
// "validation_errors" meta key as []FieldError.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}

	parts := make([]string, len(vb.fields))
	for i, f := range vb.fields {
		parts[i] = f.Field + ": " + f.Message
	}

	return InvalidArgument("validation failed: "+strings.Join(parts, "; ")).
		WithMeta("validation_errors", slices.Clone(vb.fields))
}

// ValidateRequired flags a blank string
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange flags a value outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
