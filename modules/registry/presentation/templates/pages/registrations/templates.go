package registrations

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/assets"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/viewmodels"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/composables"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

//go:embed *.gohtml
var files embed.FS

var pages = template.Must(template.New("registrations").Funcs(template.FuncMap{
	"asset": assetPath,
}).ParseFS(files, "*.gohtml"))

func assetPath(name string) string {
	return "/assets/" + assets.HashFS.HashName(name)
}

// pageData wraps page props with request-scoped rendering context.
type pageData struct {
	PageCtx   types.PageContextProvider
	Nav       []types.NavigationItem
	CSRFField template.HTML
	CSRFToken string
	Props     any
}

// Index renders the full registrations list page.
func Index(w http.ResponseWriter, r *http.Request, props *viewmodels.RegistrationsListPageProps) {
	render(w, r, "registrations/list", props)
}

// Rows renders only the table fragment, used by htmx search swaps.
func Rows(w http.ResponseWriter, r *http.Request, props *viewmodels.RegistrationsListPageProps) {
	render(w, r, "registrations/rows", props)
}

// Form renders the create and edit page.
func Form(w http.ResponseWriter, r *http.Request, props *viewmodels.RegistrationFormPageProps) {
	render(w, r, "registrations/form", props)
}

func render(w http.ResponseWriter, r *http.Request, name string, props any) {
	data := &pageData{
		PageCtx:   composables.UsePageCtx(r.Context()),
		Nav:       composables.UseNavItems(r.Context()),
		CSRFField: csrf.TemplateField(r),
		CSRFToken: csrf.Token(r),
		Props:     props,
	}

	// Buffer the page so a template failure never emits a half-written body.
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
