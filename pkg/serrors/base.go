package serrors

import "github.com/iota-uz/go-i18n/v2/i18n"

// BaseError is a coded error with an optional locale key for user-facing
// rendering. The raw Message is what Error() reports in logs.
type BaseError struct {
	Code      string
	Message   string
	LocaleKey string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{Code: code, Message: message, LocaleKey: localeKey}
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) Localize(l *i18n.Localizer) string {
	if e.LocaleKey == "" {
		return e.Message
	}
	localized, err := l.Localize(&i18n.LocalizeConfig{MessageID: e.LocaleKey})
	if err != nil {
		return e.Message
	}
	return localized
}
