package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yashrajoria/storefront-client/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("sf_email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = validate.RegisterValidation("sf_password", func(fl validator.FieldLevel) bool {
			return IsValidPassword(fl.Field().String())
		})
	})
	return validate
}

// Payload validates a request struct using its `validate` tags. Besides the
// stock validator tags, sf_email and sf_password apply IsValidEmail and
// IsValidPassword.
func Payload(v any) error {
	if err := payloadValidator().Struct(v); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, err)
	}
	return nil
}
