package helpers

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground validator with platform rules.
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a validator with the platform's custom rules.
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("lang_code", validateLangCode)
	v.RegisterValidation("currency_code", validateCurrencyCode)
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("phone_intl", validateInternationalPhone)

	return &CustomValidator{validate: v}
}

// Validate validates a struct.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

var (
	langCodeRegex = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

// validateLangCode validates language codes ("fr", "ar", "wo", "fr-SN").
func validateLangCode(fl validator.FieldLevel) bool {
	return langCodeRegex.MatchString(fl.Field().String())
}

// validateCurrencyCode validates ISO 4217 currency codes ("XOF", "EUR").
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}

// validateSlug validates URL slugs produced by GenerateSlug.
func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// validateInternationalPhone validates donor phone numbers in loose E.164 form.
func validateInternationalPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
