package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// Error is an error whose message is resolved against a localizer.
type Error interface {
	Localize(l *i18n.Localizer) string
}

// ValidationError carries a single failed validator rule for a field.
type ValidationError struct {
	Tag            string
	Param          string
	FieldLocaleKey string
}

func (e *ValidationError) Localize(l *i18n.Localizer) string {
	fieldLabel := e.FieldLocaleKey
	if e.FieldLocaleKey != "" {
		if localized, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.FieldLocaleKey}); err == nil {
			fieldLabel = localized
		}
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID: fmt.Sprintf("ValidationErrors.%s", e.Tag),
		TemplateData: map[string]string{
			"Field": fieldLabel,
			"Param": e.Param,
		},
	})
	if err != nil {
		return fmt.Sprintf("%s is invalid", fieldLabel)
	}
	return msg
}

type ValidationErrors map[string]Error

// ProcessValidatorErrors maps validator failures to localizable errors keyed
// by struct field name. fieldLocaleKey resolves a field to its label message
// ID; an empty result leaves the raw field name as the label.
func ProcessValidatorErrors(
	errs validator.ValidationErrors,
	fieldLocaleKey func(field string) string,
) map[string]Error {
	out := make(map[string]Error, len(errs))
	for _, err := range errs {
		out[err.Field()] = &ValidationError{
			Tag:            err.Tag(),
			Param:          err.Param(),
			FieldLocaleKey: fieldLocaleKey(err.Field()),
		}
	}
	return out
}

func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Localize(l)
	}
	return out
}
