package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var Validate *validator.Validate

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

func InitValidator() {
	Validate = validator.New()

	Validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation("notblank", validators.NotBlank)
	_ = Validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = Validate.RegisterValidation("weblink", func(fl validator.FieldLevel) bool {
		link := fl.Field().String()
		return link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
	})
}

// ValidationMessages turns validator errors into a field-keyed message map.
// It returns nil when err is not a validation error.
func ValidationMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	messages := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, ok := messages[field]; ok {
			continue
		}
		messages[field] = validationMessage(fe)
	}
	return messages
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notblank":
		return "this field may not be blank"
	case "email":
		return "enter a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "clock":
		return "time has wrong format, use hh:mm:ss"
	case "weblink":
		return "enter a valid URL starting with http:// or https://"
	case "min":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this field has at least %s items or characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this field has no more than %s items or characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the %s rule", fe.Tag())
	}
}
