// Package validation builds the struct validator shared by the RPC layer and
// snapshot import.
package validation

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags registered:
//
//	positive_amount: a finite float greater than zero
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("positive_amount", positiveAmount)
	return v
}

func positiveAmount(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
