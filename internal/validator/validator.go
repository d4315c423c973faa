package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/openelearn/platform-service/internal/models"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator validates request payloads against their struct tags plus
// the platform's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the platform rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerPlatformRules()

	return v
}

// Validate validates a struct and returns ValidationErrors when any
// field fails, nil otherwise.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

// registerPlatformRules registers custom platform validators.
func (v *Validator) registerPlatformRules() {
	// Role validation (student, faculty, admin)
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})
}

// getErrorMessage maps a failed rule to the message clients see.
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "user_role":
		return "must be a valid user role"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
