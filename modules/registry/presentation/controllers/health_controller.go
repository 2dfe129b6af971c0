package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/services"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/httpapi"
)

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
	Records int    `json:"records"`
	Loading bool   `json:"loading"`
}

type HealthController struct {
	registrations *services.RegistrationService
	basePath      string
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{
		registrations: app.Service(services.RegistrationService{}).(*services.RegistrationService),
		basePath:      "/health",
	}
}

func (c *HealthController) Key() string {
	return c.basePath
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc(c.basePath, c.Get).Methods(http.MethodGet)
}

// Get probes the backend with a full fetch, so a passing check also warms the
// record cache.
func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	resp := &healthResponse{Status: "ok", Backend: "reachable"}
	status := http.StatusOK

	if err := c.registrations.RefreshAll(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Backend = "unreachable"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	}
	resp.Records = len(c.registrations.Cached())
	resp.Loading = c.registrations.Loading()

	_ = httpapi.WriteJSON(w, status, resp)
}
