package payments

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/p2pdesk/backoffice/internal/external/payment"
)

// FieldError names one schema violation on a payment envelope
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the discriminated outcome of schema validation:
// either Valid with the checked envelope, or a non-empty ordered list
// of field errors.
type ValidationResult struct {
	Valid    bool
	Envelope *payment.Envelope
	Errors   []FieldError
}

// Validator checks payment envelopes against the payment API schema.
// It checks structure only (presence, type, length); it does not verify
// that a bank code actually exists. The same validator serves both the
// bulk and the single payment paths.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate runs schema validation on one envelope. It never panics on
// bad input; every violation comes back as a field/message pair in
// declaration order.
func (v *Validator) Validate(envelope *payment.Envelope) ValidationResult {
	if envelope == nil {
		return ValidationResult{
			Errors: []FieldError{{Field: "envelope", Message: "is required"}},
		}
	}

	err := v.validate.Struct(envelope)
	if err == nil {
		return ValidationResult{Valid: true, Envelope: envelope}
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationResult{
			Errors: []FieldError{{Field: "envelope", Message: err.Error()}},
		}
	}

	fieldErrors := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   violation.Field(),
			Message: describeViolation(violation),
		})
	}

	return ValidationResult{Errors: fieldErrors}
}

// describeViolation renders a tag violation as a human-readable message
func describeViolation(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", violation.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", violation.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", violation.Param())
	default:
		return fmt.Sprintf("failed %s validation", violation.Tag())
	}
}
