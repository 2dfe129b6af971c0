package shared

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-playground/form"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/htmx"
)

// Decoder is the shared form decoder. Date inputs submit YYYY-MM-DD values,
// which it parses into time.Time fields.
var Decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		// An empty date input is a valid submission, not a parse failure.
		if len(vals) == 0 || vals[0] == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.DateOnly, vals[0])
	}, time.Time{})
	return d
}

// Redirect sends the browser to path, via the Hx-Redirect header for htmx
// requests and a plain 302 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, path)
	} else {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

// SetFlash stores a one-shot value in a cookie. The matching read side is
// composables.UseFlash, which clears it.
func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:  name,
		Value: base64.URLEncoding.EncodeToString(value),
		Path:  "/",
	})
}
