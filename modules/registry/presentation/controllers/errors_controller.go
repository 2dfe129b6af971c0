package controllers

import (
	"net/http"
	"strings"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/templates/pages/errorpages"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/httpapi"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/middleware"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/routing"
)

type ErrorHandlersOptions struct {
	Entrypoint    string
	AllowlistPath string
}

// NotFound returns the router's catch-all handler. API namespaces get a JSON
// envelope, everything else the rendered 404 page.
func NotFound(app application.Application, opts ...ErrorHandlersOptions) http.HandlerFunc {
	var resolvedOpts ErrorHandlersOptions
	if len(opts) > 0 {
		resolvedOpts = opts[0]
	}

	rules, err := routing.LoadAllowlist(resolvedOpts.AllowlistPath, resolvedOpts.Entrypoint)
	if err != nil {
		rules = nil
	}
	classifier := routing.NewClassifier(rules)

	return func(w http.ResponseWriter, r *http.Request) {
		if routing.IsAPIClass(classifier.ClassifyPath(r.URL.Path)) {
			meta := map[string]string{
				"path": r.URL.Path,
			}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.NotFound(w, meta)
			return
		}

		handler := middleware.WithPageContext()(http.HandlerFunc(errorpages.NotFound))
		handler = middleware.ProvideLocalizer(app)(handler)
		handler.ServeHTTP(w, r)
	}
}

func MethodNotAllowed(opts ...ErrorHandlersOptions) http.HandlerFunc {
	var resolvedOpts ErrorHandlersOptions
	if len(opts) > 0 {
		resolvedOpts = opts[0]
	}

	rules, err := routing.LoadAllowlist(resolvedOpts.AllowlistPath, resolvedOpts.Entrypoint)
	if err != nil {
		rules = nil
	}
	classifier := routing.NewClassifier(rules)

	return func(w http.ResponseWriter, r *http.Request) {
		if routing.IsAPIClass(classifier.ClassifyPath(r.URL.Path)) {
			meta := map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.MethodNotAllowed(w, meta)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func requestIDFromResponse(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-Id")); requestID != "" {
			return requestID
		}
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-ID")); requestID != "" {
			return requestID
		}
	}
	if r != nil {
		if requestID := strings.TrimSpace(r.Header.Get("X-Request-Id")); requestID != "" {
			return requestID
		}
		return strings.TrimSpace(r.Header.Get("X-Request-ID"))
	}
	return ""
}
