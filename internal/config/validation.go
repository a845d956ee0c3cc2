package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator for struct-tag validation.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the whole Config struct.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
