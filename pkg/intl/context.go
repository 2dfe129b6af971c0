package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type contextKey int

const (
	localizerKey contextKey = iota
	localeKey
)

var (
	ErrNoLocalizer = errors.New("localizer not found in context")
	ErrNoLocale    = errors.New("locale not found in context")
)

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey).(*i18n.Localizer)
	return l, ok
}

func WithLocale(ctx context.Context, locale language.Tag) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	locale, ok := ctx.Value(localeKey).(language.Tag)
	return locale, ok
}
