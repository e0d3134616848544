package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/errdispatch/dispatch"
	"github.com/kbukum/errdispatch/hierarchy"
)

// FieldError describes one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields under their json names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateRequest checks s against its validate tags and returns a
// request-validation tagged dispatch error describing every failed field,
// or nil when s is valid.
func ValidateRequest(s any) error {
	return check(s, dispatch.TagRequestValidation, "request validation failed")
}

// ValidateResponse is ValidateRequest for handler output, tagged as a
// response-validation failure instead.
func ValidateResponse(s any) error {
	return check(s, dispatch.TagResponseValidation, "response validation failed")
}

func check(s any, tag hierarchy.Tag, message string) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var problems []FieldError
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		problems = make([]FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, FieldError{
				Field:   fe.Field(),
				Message: describe(fe),
			})
		}
	}

	return dispatch.NewError(tag, message).
		WithCause(err).
		WithDatum("problems", problems)
}

// describe renders a field error as a short human-readable message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
