// Package schema is the validation service for the blog admin backend.
// Incoming payloads and filters are checked here before any document-store
// call happens.
package schema

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BlogCreate is the writable shape for creating a blog. Audit fields
// (added_by, updated_by) are intentionally absent: they are injected
// server-side and stripped from client payloads.
type BlogCreate struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200,lowercase,excludesall= "`
	Description string   `json:"description" validate:"max=2000"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	IsActive    *bool    `json:"is_active"`
}

// BlogUpdate is the writable shape for a full update.
type BlogUpdate struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200,lowercase,excludesall= "`
	Description string   `json:"description" validate:"max=2000"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	IsActive    *bool    `json:"is_active"`
}

// BlogPatch is the writable shape for a partial update. Every field is
// optional; constraints only apply to fields that are present.
type BlogPatch struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Slug        *string  `json:"slug" validate:"omitempty,max=200,lowercase,excludesall= "`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsActive    *bool    `json:"is_active"`
}

// ValidationError describes one failed constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is the error type every Validate* function returns on
// schema mismatch.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve[0].Message)
}

func ValidateCreate(in *BlogCreate) error {
	return wrap(validate.Struct(in))
}

func ValidateUpdate(in *BlogUpdate) error {
	return wrap(validate.Struct(in))
}

func ValidatePatch(in *BlogPatch) error {
	return wrap(validate.Struct(in))
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error()}}
	}

	var out ValidationErrors
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s exceeds maximum length %s", fe.Field(), fe.Param())
	case "lowercase":
		return fmt.Sprintf("%s must be lowercase", fe.Field())
	case "excludesall":
		return fmt.Sprintf("%s must not contain spaces", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
