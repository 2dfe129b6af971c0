// Package htmx provides helpers for reading and writing HTMX request and
// response headers.
package htmx

import "net/http"

// IsHxRequest returns true when the request was issued by htmx.
func IsHxRequest(r *http.Request) bool {
	return r.Header.Get("Hx-Request") == "true"
}

// IsBoosted returns true for requests made via hx-boost.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("Hx-Boosted") == "true"
}

// Redirect instructs htmx to perform a client-side redirect.
func Redirect(w http.ResponseWriter, path string) {
	w.Header().Set("Hx-Redirect", path)
}
