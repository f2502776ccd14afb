package services

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/thereayou/brainly/internal/apperr"
)

// Request structs carry gin `binding` tags; the same rules are enforced here
// for callers that do not go through gin.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// InvalidInput turns binding/validation failures into a ValidationError.
func InvalidInput(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("Invalid input")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "min":
			problems = append(problems, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		case "max":
			problems = append(problems, fmt.Sprintf("%s must be at most %s characters long", field, fe.Param()))
		case "email":
			problems = append(problems, "invalid email address")
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", field))
		}
	}
	return apperr.Validation("Invalid input: " + strings.Join(problems, "; "))
}
