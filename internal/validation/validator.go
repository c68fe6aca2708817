// Package validation checks request bodies against their struct tags and
// reports failures keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aminekebichi/MyDay/internal/calendar"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Empty strings are treated as absent; required/min guard presence.
	_ = validate.RegisterValidation("datestring", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := calendar.ParseAnchor(s)
		return err == nil
	})
}

// FieldErrors maps a JSON field name to its failure messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

var messages = map[string]string{
	"required":   "%s is required",
	"min":        "%s must be at least %s characters long",
	"max":        "%s must be no longer than %s characters",
	"oneof":      "%s must be one of: %s",
	"datestring": "%s must be a valid date",
}

func message(field string, e validator.FieldError) string {
	label := strings.ToUpper(field[:1]) + field[1:]
	msg, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", label)
	}
	switch strings.Count(msg, "%s") {
	case 2:
		param := e.Param()
		if e.Tag() == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		return fmt.Sprintf(msg, label, param)
	default:
		return fmt.Sprintf(msg, label)
	}
}

// Struct validates s and returns the field errors, or nil when s is valid.
func Struct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fe := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("_", err.Error())
		return fe
	}
	for _, e := range verrs {
		field := e.Field()
		if field == "" {
			field = e.StructField()
		}
		fe.Add(field, message(field, e))
	}
	return fe
}
