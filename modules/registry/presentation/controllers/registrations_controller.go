package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/mappers"
	registrationtemplates "github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/templates/pages/registrations"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/viewmodels"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/services"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/composables"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/htmx"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/middleware"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/shared"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

const (
	flashSuccessCookie = "success"
	flashErrorCookie   = "error"
)

type RegistrationsController struct {
	app           application.Application
	registrations *services.RegistrationService
	basePath      string
}

func NewRegistrationsController(app application.Application) application.Controller {
	return &RegistrationsController{
		app:           app,
		registrations: app.Service(services.RegistrationService{}).(*services.RegistrationService),
		basePath:      "/vehicles",
	}
}

func (c *RegistrationsController) Key() string {
	return c.basePath
}

func (c *RegistrationsController) Register(r *mux.Router) {
	r.HandleFunc("/", c.RedirectRoot).Methods(http.MethodGet)

	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideLocalizer(c.app),
		middleware.NavItems(),
		middleware.WithPageContext(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/new", c.NewForm).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}/edit", c.EditForm).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *RegistrationsController) RedirectRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, c.basePath, http.StatusFound)
}

func (c *RegistrationsController) List(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(composables.GetLastQueryParam(r, "q"))

	var bannerError string
	entities, err := c.registrations.Search(r.Context(), q)
	if err != nil {
		// The previous cache contents, if any, stay on screen next to the error.
		bannerError = err.Error()
		entities = c.registrations.Cached()
	}

	items := make([]*viewmodels.Registration, 0, len(entities))
	for _, entity := range entities {
		vm := mappers.RegistrationToViewModel(entity)
		vm.EditURL = fmt.Sprintf("%s/%s/edit", c.basePath, url.PathEscape(entity.ID()))
		vm.DeleteURL = fmt.Sprintf("%s/%s", c.basePath, url.PathEscape(entity.ID()))
		items = append(items, vm)
	}

	props := &viewmodels.RegistrationsListPageProps{
		Items:       items,
		Q:           q,
		Loading:     c.registrations.Loading(),
		BannerError: bannerError,
		NewURL:      c.basePath + "/new",
		SearchURL:   c.basePath,
	}

	// Search requests swap only the table fragment.
	if htmx.IsHxRequest(r) && !htmx.IsBoosted(r) {
		registrationtemplates.Rows(w, r, props)
		return
	}

	if msg, err := composables.UseFlash(w, r, flashSuccessCookie); err == nil {
		props.FlashSuccess = string(msg)
	}
	if msg, err := composables.UseFlash(w, r, flashErrorCookie); err == nil {
		props.FlashError = string(msg)
	}
	registrationtemplates.Index(w, r, props)
}

func (c *RegistrationsController) NewForm(w http.ResponseWriter, r *http.Request) {
	form := &viewmodels.RegistrationFormVM{
		RegistrationDate: time.Now().Format(time.DateOnly),
	}
	props := c.formProps(form, map[string]string{}, c.basePath, false)
	registrationtemplates.Form(w, r, props)
}

func (c *RegistrationsController) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseForm(&registration.CreateDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props := c.formProps(mappers.CreateDTOToFormVM(dto), errorsMap, c.basePath, false)
		registrationtemplates.Form(w, r, props)
		return
	}

	pageCtx := composables.UsePageCtx(r.Context())
	if err := c.registrations.Create(r.Context(), dto); err != nil {
		var refreshErr *services.RefreshError
		if errors.As(err, &refreshErr) {
			// The record was stored; only the follow-up fetch failed.
			shared.SetFlash(w, flashSuccessCookie, []byte(pageCtx.T("Registrations.Flash.Created")))
			shared.SetFlash(w, flashErrorCookie, []byte(refreshErr.Err.Error()))
			shared.Redirect(w, r, c.basePath)
			return
		}
		props := c.formProps(mappers.CreateDTOToFormVM(dto), map[string]string{}, c.basePath, false)
		props.BannerError = err.Error()
		registrationtemplates.Form(w, r, props)
		return
	}

	shared.SetFlash(w, flashSuccessCookie, []byte(pageCtx.T("Registrations.Flash.Created")))
	shared.Redirect(w, r, c.basePath)
}

func (c *RegistrationsController) EditForm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	entity, err := c.registrations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	postTo := fmt.Sprintf("%s/%s", c.basePath, url.PathEscape(entity.ID()))
	props := c.formProps(mappers.RegistrationToFormVM(entity), map[string]string{}, postTo, true)
	registrationtemplates.Form(w, r, props)
}

func (c *RegistrationsController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	postTo := fmt.Sprintf("%s/%s", c.basePath, url.PathEscape(id))

	dto, err := composables.UseForm(&registration.UpdateDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		props := c.formProps(mappers.UpdateDTOToFormVM(dto), errorsMap, postTo, true)
		registrationtemplates.Form(w, r, props)
		return
	}

	pageCtx := composables.UsePageCtx(r.Context())
	if _, err := c.registrations.Update(r.Context(), id, dto); err != nil {
		var refreshErr *services.RefreshError
		if errors.As(err, &refreshErr) {
			shared.SetFlash(w, flashSuccessCookie, []byte(pageCtx.T("Registrations.Flash.Updated")))
			shared.SetFlash(w, flashErrorCookie, []byte(refreshErr.Err.Error()))
			shared.Redirect(w, r, c.basePath)
			return
		}
		props := c.formProps(mappers.UpdateDTOToFormVM(dto), map[string]string{}, postTo, true)
		props.BannerError = err.Error()
		registrationtemplates.Form(w, r, props)
		return
	}

	shared.SetFlash(w, flashSuccessCookie, []byte(pageCtx.T("Registrations.Flash.Updated")))
	shared.Redirect(w, r, c.basePath)
}

func (c *RegistrationsController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pageCtx := composables.UsePageCtx(r.Context())
	deleted, err := c.registrations.Remove(r.Context(), id)
	if err != nil {
		var refreshErr *services.RefreshError
		if errors.As(err, &refreshErr) {
			shared.SetFlash(w, flashSuccessCookie, []byte(c.deletedFlash(pageCtx, deleted)))
			shared.SetFlash(w, flashErrorCookie, []byte(refreshErr.Err.Error()))
			shared.Redirect(w, r, c.basePath)
			return
		}
		shared.SetFlash(w, flashErrorCookie, []byte(err.Error()))
		shared.Redirect(w, r, c.basePath)
		return
	}

	shared.SetFlash(w, flashSuccessCookie, []byte(c.deletedFlash(pageCtx, deleted)))
	shared.Redirect(w, r, c.basePath)
}

func (c *RegistrationsController) deletedFlash(pageCtx types.PageContextProvider, deleted registration.Registration) string {
	if plate := deleted.PlateNo(); plate != "" {
		return pageCtx.T("Registrations.Flash.DeletedPlate", map[string]interface{}{"PlateNo": plate})
	}
	return pageCtx.T("Registrations.Flash.Deleted")
}

func (c *RegistrationsController) formProps(form *viewmodels.RegistrationFormVM, errorsMap map[string]string, postTo string, editing bool) *viewmodels.RegistrationFormPageProps {
	return &viewmodels.RegistrationFormPageProps{
		Form:    form,
		Errors:  errorsMap,
		PostTo:  postTo,
		BackURL: c.basePath,
		Editing: editing,
		MinYear: registration.MinManufacturedYear,
		MaxYear: registration.MaxManufacturedYear(),
	}
}
