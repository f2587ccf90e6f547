// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package validation

import (
	"strings"
)

// CodeValidation is the API error code for rejected input.
const CodeValidation = "VALIDATION_ERROR"

// FieldError is one rejected field. Field is the name the client sent
// (json or query tag).
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the rejected field name.
func (e *FieldError) Field() string { return e.field }

// Tag returns the failing rule, e.g. "max" or "eventtype".
func (e *FieldError) Tag() string { return e.tag }

// Param returns the rule parameter ("100" for max=100).
func (e *FieldError) Param() string { return e.param }

// Value returns the rejected value.
func (e *FieldError) Value() interface{} { return e.value }

func (e *FieldError) Error() string { return e.message }

// RequestValidationError collects every rejected field of one request.
type RequestValidationError struct {
	errors []FieldError
}

// NewFieldError builds a single-field error for rules that struct tags
// cannot express, such as cross-field sums or path parameters.
func NewFieldError(field, tag string, value interface{}, message string) *RequestValidationError {
	return &RequestValidationError{
		errors: []FieldError{{field: field, tag: tag, value: value, message: message}},
	}
}

// Errors returns the rejected fields in struct order.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.errors))
	for i := range ve.errors {
		parts[i] = ve.errors[i].message
	}
	return strings.Join(parts, "; ")
}

// APIError mirrors the API error envelope without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError renders the error for the response envelope. A single field
// is flattened into details; several are listed under details.fields and
// prefixed with their names in the message.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    CodeValidation,
			Message: e.message,
			Details: map[string]interface{}{"field": e.field, "tag": e.tag, "value": e.value},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	parts := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{"field": e.field, "tag": e.tag, "message": e.message}
		parts[i] = e.field + ": " + e.message
	}
	return &APIError{
		Code:    CodeValidation,
		Message: strings.Join(parts, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}
