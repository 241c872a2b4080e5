// Package validation turns request payload checks into a list of
// field-level errors that handlers render as a 422 response.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error types reported to clients.
const (
	TypeMissing     = "missing"
	TypeEmail       = "value_error.email"
	TypeJSONInvalid = "json_invalid"
	TypeInvalid     = "value_error"
)

// FieldError describes one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
	Type    string `json:"type"`
}

// Error is the client-input error kind. It carries every failing field.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Error) Add(field, typ, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg, Type: typ})
}

// Has reports whether field already failed.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns e as an error, or nil when no field failed.
func (e *Error) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Missing builds a single-field error for a required field.
func Missing(field string) *Error {
	e := &Error{}
	e.Add(field, TypeMissing, "Field required")
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct runs the `validate` struct tags on v. The result is never nil; use
// Err to check for failures.
func Struct(v any) *Error {
	out := &Error{}
	err := validate.Struct(v)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("body", TypeInvalid, err.Error())
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Add(fe.Field(), TypeMissing, "Field required")
		case "email":
			out.Add(fe.Field(), TypeEmail, "value is not a valid email address")
		default:
			out.Add(fe.Field(), TypeInvalid, fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
		}
	}
	return out
}
