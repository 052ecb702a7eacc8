// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package validation wraps go-playground/validator v10 for configuration
// structs. Field names in error messages are taken from the koanf tag so they
// read like the configuration keys an operator actually sets.
//
//	type ZettaConfig struct {
//	    APIKey string `koanf:"api_key" validate:"required"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// apiVersionPattern matches the Simple API path segment, e.g. "1.0".
var apiVersionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// hostLabelPattern is an RFC 1123 label that also allows underscores, as
// Windows machine names do.
var hostLabelPattern = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_-]{0,61}[A-Za-z0-9_])?$`)

// FieldError is a single failed rule on one field.
type FieldError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the config key that failed validation.
func (e *FieldError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

// Param returns the rule parameter (e.g. "65535" for "max=65535").
func (e *FieldError) Param() string {
	return e.param
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// StructValidationError collects every field that failed.
type StructValidationError struct {
	errors []FieldError
}

// Errors returns the failed fields in declaration order.
func (ve *StructValidationError) Errors() []FieldError {
	return ve.errors
}

// Fields returns the names of the failed fields.
func (ve *StructValidationError) Fields() []string {
	names := make([]string, len(ve.errors))
	for i := range ve.errors {
		names[i] = ve.errors[i].field
	}
	return names
}

// Error implements the error interface.
func (ve *StructValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].Error()
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
			return apiVersionPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("zettahost", func(fl validator.FieldLevel) bool {
			return isHostName(fl.Field().String())
		})
	})

	return validate
}

func isHostName(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "" || len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if !hostLabelPattern.MatchString(label) {
			return false
		}
	}
	return true
}

// ValidateStruct validates a struct using the singleton validator.
// It returns nil when validation passes. The nil check is done here so
// callers receive an untyped nil error rather than a typed nil pointer.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructValidationError{
			errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = FieldError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			message: translateError(fieldErr),
		}
	}

	return &StructValidationError{errors: fieldErrors}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"hostname":   "%s must be a valid hostname",
	"zettahost":  "%s must be a valid hostname",
	"ip":         "%s must be a valid IP address",
	"apiversion": "%s must look like MAJOR.MINOR (e.g. 1.0)",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "zettahost|ip":
		return fmt.Sprintf("%s must be a hostname or IP address", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
