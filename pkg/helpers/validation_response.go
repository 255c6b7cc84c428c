package helpers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorResponse represents the validation error payload returned to
// the API layer.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// localeMessages holds error message templates per locale. French first, the
// platform default.
var localeMessages = map[string]map[string]string{
	"fr": {
		"required":      "Le champ %s est obligatoire",
		"email":         "Le champ %s doit être une adresse email valide",
		"min":           "Le champ %s doit contenir au moins %s caractères",
		"max":           "Le champ %s ne doit pas dépasser %s caractères",
		"oneof":         "Le champ %s doit être parmi : %s",
		"lang_code":     "Le champ %s doit être un code de langue valide",
		"currency_code": "Le champ %s doit être un code de devise valide",
		"slug":          "Le champ %s doit être un slug valide",
		"phone_intl":    "Le champ %s doit être un numéro de téléphone valide",
		"invalid":       "Le champ %s est invalide",
	},
	"en": {
		"required":      "The %s field is required",
		"email":         "The %s field must be a valid email address",
		"min":           "The %s field must be at least %s characters",
		"max":           "The %s field must not exceed %s characters",
		"oneof":         "The %s field must be one of: %s",
		"lang_code":     "The %s field must be a valid language code",
		"currency_code": "The %s field must be a valid currency code",
		"slug":          "The %s field must be a valid slug",
		"phone_intl":    "The %s field must be a valid phone number",
		"invalid":       "The %s field is invalid",
	},
}

// BuildValidationResponse converts validator errors into a field→message map
// for the given locale. Unknown locales fall back to French.
func BuildValidationResponse(err error, locale string) ValidationErrorResponse {
	messages, ok := localeMessages[locale]
	if !ok {
		messages = localeMessages["fr"]
	}

	resp := ValidationErrorResponse{
		Message: "validation failed",
		Errors:  map[string]string{},
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return resp
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			template = messages["invalid"]
		}

		switch fieldErr.Tag() {
		case "min", "max", "oneof":
			resp.Errors[field] = fmt.Sprintf(template, field, fieldErr.Param())
		default:
			resp.Errors[field] = fmt.Sprintf(template, field)
		}
	}

	return resp
}
