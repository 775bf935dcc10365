// Package validation adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validation

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Validate checks the struct tags of a bound request payload.
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
