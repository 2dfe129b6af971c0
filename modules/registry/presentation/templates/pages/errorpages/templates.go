package errorpages

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/composables"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

//go:embed *.gohtml
var files embed.FS

var pages = template.Must(template.New("errorpages").ParseFS(files, "*.gohtml"))

type pageData struct {
	PageCtx types.PageContextProvider
}

// NotFound renders the localized 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, "errorpages/notfound", http.StatusNotFound)
}

func render(w http.ResponseWriter, r *http.Request, name string, status int) {
	data := &pageData{PageCtx: composables.UsePageCtx(r.Context())}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
