package composables

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/shared"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

var (
	ErrNoLogger = errors.New("logger not found")
)

// Params carries the client metadata captured when the request entered the
// middleware chain.
type Params struct {
	IP        string
	UserAgent string
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request-scoped logger from the context.
// Panics when the logging middleware did not run.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic(ErrNoLogger)
	}
	return logger.(*logrus.Entry)
}

// UsePageCtx returns the page context from the context.
// If the page context is not found, function will panic.
func UsePageCtx(ctx context.Context) types.PageContextProvider {
	pageCtx, ok := ctx.Value(constants.PageContext).(types.PageContextProvider)
	if !ok {
		panic("page context not found")
	}
	return pageCtx
}

// WithPageCtx returns a new context with the page context.
// Accepts any type implementing PageContextProvider interface for extensibility.
func WithPageCtx(ctx context.Context, pageCtx types.PageContextProvider) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

// UseFlash reads and clears a flash cookie. Falls back to a query parameter
// of the same name so redirects can carry a message without a cookie.
func UseFlash(w http.ResponseWriter, r *http.Request, name string) ([]byte, error) {
	c, err := r.Cookie(name)
	if err != nil {
		switch err {
		case http.ErrNoCookie:
			queryValue := r.URL.Query().Get(name)
			if queryValue != "" {
				return []byte(queryValue), nil
			}
			return nil, nil
		default:
			return nil, err
		}
	}
	val, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, err
	}
	dc := &http.Cookie{Name: name, MaxAge: -1, Expires: time.Unix(1, 0)}
	http.SetCookie(w, dc)
	return val, nil
}

func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}

// GetLastQueryParam returns the last occurrence of a query parameter.
// This is useful when HTMX includes form data via hx-include="closest form",
// which appends form values to the URL, creating duplicate parameters.
// The last occurrence represents the current form state, while earlier
// occurrences may be stale values from the URL.
//
// Example:
//
//	URL: /vehicles?q=abc&sort=plate&q=abcd
//	GetLastQueryParam(r, "q") returns "abcd"
func GetLastQueryParam(r *http.Request, key string) string {
	values := r.URL.Query()[key]
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}
