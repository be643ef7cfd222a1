// Package form validates user input before it is sent to the backend.
package form

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names in errors are the json tag names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// FieldPath returns the dotted path of a field error without the root struct name
func FieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// Message renders a generic human-readable message for a field error
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless", "required_if", "required_with":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "numeric", "number":
		return fmt.Sprintf("%s must be a number", fe.Field())
	case "hostname_rfc1123", "hostname", "ip":
		return fmt.Sprintf("%s must be a valid host", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// FieldError is one failed field
type FieldError struct {
	Path    string
	Message string
}

// FieldErrors is an ordered set of failed fields
type FieldErrors []FieldError

// Error implements the error interface
func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// FirstViolation returns the first failed field
func (fe FieldErrors) FirstViolation() (path, message string) {
	if len(fe) == 0 {
		return "", ""
	}
	return fe[0].Path, fe[0].Message
}

// For returns the message of the field at path, or ""
func (fe FieldErrors) For(path string) string {
	for _, e := range fe {
		if e.Path == path {
			return e.Message
		}
	}
	return ""
}

// fromValidation converts validator errors. Paths get prefix prepended;
// required failures use the message in custom for their path when present.
func fromValidation(ve validator.ValidationErrors, prefix string, custom map[string]string) FieldErrors {
	out := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		path := prefix + FieldPath(fe)
		msg := Message(fe)
		if strings.HasPrefix(fe.Tag(), "required") {
			if m, ok := custom[path]; ok {
				msg = m
			}
		}
		out = append(out, FieldError{Path: path, Message: msg})
	}
	return out
}
