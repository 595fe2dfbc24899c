package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// E164-like phone: optional +, digits 7-15 length
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return phoneRegex.MatchString(val)
}

// FieldErrors flattens validator errors into per-field reasons suitable for
// an error response body.
func FieldErrors(err error) []string {
	var details []string
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "max":
			details = append(details, fmt.Sprintf("%s exceeds maximum length %s", fe.Field(), fe.Param()))
		case "min":
			details = append(details, fmt.Sprintf("%s is below minimum %s", fe.Field(), fe.Param()))
		case "email":
			details = append(details, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "url":
			details = append(details, fmt.Sprintf("%s must be a valid URL", fe.Field()))
		case "valid_phone":
			details = append(details, fmt.Sprintf("%s must be a valid phone number", fe.Field()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details
}
