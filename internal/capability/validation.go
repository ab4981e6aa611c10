package capability

import "github.com/go-playground/validator/v10"

// validator tag accepting taxonomy members
const ValidationTag = "capability"

// registers the "capability" tag on v; empty strings are left to omitempty/required
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(ValidationTag, func(fl validator.FieldLevel) bool {
		return Valid(Capability(fl.Field().String()))
	})
}
