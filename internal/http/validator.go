package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes a single failed validation rule on a request body.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct runs the validator over s and flattens the result into
// field errors. Returns nil when s is valid.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var out []FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		field := fe.Field()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		out = append(out, FieldError{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Tag:     fe.Tag(),
			Message: message,
		})
	}
	return out
}

func hasTag(errs []FieldError, tag string) bool {
	for _, fe := range errs {
		if fe.Tag == tag {
			return true
		}
	}
	return false
}
