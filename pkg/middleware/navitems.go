package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/intl"
)

// NavItems resolves the registered navigation tree against the request locale
// and stores it in the context for page rendering.
func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				app, err := application.UseApp(r.Context())
				if err != nil {
					panic(err.Error())
				}
				localizer, ok := intl.UseLocalizer(r.Context())
				if !ok {
					panic("localizer not found in context")
				}
				ctx := context.WithValue(r.Context(), constants.NavItemsKey, app.NavItems(localizer))
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
