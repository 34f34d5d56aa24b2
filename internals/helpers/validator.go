// file: internals/helpers/validator.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func Validate() *validator.Validate { return validate }

// FieldErrors flattens validator.v10 errors into field → tag for the 400 envelope.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}
