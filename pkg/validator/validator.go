// Package validator wraps go-playground struct validation and registers
// the custom rules request payloads rely on.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError reports one failed rule on a request payload field.
type FieldError struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// uuid_required: the zero UUID counts as absent, same as a missing field
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// ValidateStruct checks data against its validate tags and returns one
// entry per failed field, empty when the payload is valid.
func ValidateStruct(data interface{}) []*FieldError {
	var failures []*FieldError
	if err := validate.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			failures = append(failures, &FieldError{
				FailedField: fieldErr.StructNamespace(),
				Tag:         fieldErr.Tag(),
				Value:       fieldErr.Param(),
			})
		}
	}
	return failures
}
