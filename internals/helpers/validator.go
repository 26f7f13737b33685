package helper

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{7}$|^[0-9]{10}$`)
	gmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@gmail\.com$`)
)

// NewValidator returns a validator that reports json field names and knows
// the "phone" and "gmail" rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("gmail", func(fl validator.FieldLevel) bool {
		return gmailPattern.MatchString(strings.ToLower(fl.Field().String()))
	})
	return v
}
