package routinggates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	registrycontrollers "github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/controllers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/middleware"
)

func TestAPIErrorContracts_JSONOnly_For404And405(t *testing.T) {
	app := application.New(&application.ApplicationOptions{
		Bundle: application.LoadBundle(),
	})

	opts := registrycontrollers.ErrorHandlersOptions{Entrypoint: "server"}
	notFound := registrycontrollers.NotFound(app, opts)
	methodNotAllowed := registrycontrollers.MethodNotAllowed(opts)

	t.Run("404_public_api_is_json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/__nonexistent__", nil)
		req.Header.Set("X-Request-ID", "req-404-public")
		notFound(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var payload apiError
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
		require.Equal(t, "NOT_FOUND", payload.Code)
		require.Equal(t, "not found", payload.Message)
		require.Equal(t, "/api/v1/__nonexistent__", payload.Meta["path"])
	})

	t.Run("404_internal_api_is_json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com/registry/api/__nonexistent__", nil)
		notFound(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var payload apiError
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
		require.Equal(t, "NOT_FOUND", payload.Code)
		require.Equal(t, "not found", payload.Message)
		require.Equal(t, "/registry/api/__nonexistent__", payload.Meta["path"])
	})

	t.Run("405_public_api_is_json", func(t *testing.T) {
		r := mux.NewRouter()
		r.MethodNotAllowedHandler = methodNotAllowed
		r.HandleFunc("/api/v1/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodGet)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/ping", nil)
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var payload apiError
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
		require.Equal(t, "METHOD_NOT_ALLOWED", payload.Code)
		require.Equal(t, "method not allowed", payload.Message)
		require.Equal(t, http.MethodPost, payload.Meta["method"])
		require.Equal(t, "/api/v1/ping", payload.Meta["path"])
	})

	t.Run("405_internal_api_is_json", func(t *testing.T) {
		r := mux.NewRouter()
		r.MethodNotAllowedHandler = methodNotAllowed
		r.HandleFunc("/registry/api/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodGet)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://example.com/registry/api/ping", nil)
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var payload apiError
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
		require.Equal(t, "METHOD_NOT_ALLOWED", payload.Code)
		require.Equal(t, "method not allowed", payload.Message)
		require.Equal(t, http.MethodPost, payload.Meta["method"])
		require.Equal(t, "/registry/api/ping", payload.Meta["path"])
	})
}

func TestAPIErrorContracts_PanicRecovery_IsJSON(t *testing.T) {
	logger := logrus.New()
	opts := middleware.DefaultLoggerOptions()
	opts.Entrypoint = "server"

	h := middleware.WithLogger(logger, opts)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/panic", nil)
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var payload apiError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Code)
	require.Equal(t, "internal server error", payload.Message)
	require.Equal(t, "/api/v1/panic", payload.Meta["path"])
	require.NotEmpty(t, payload.Meta["request_id"])
}

func TestAPIErrorContracts_PanicRecovery_UIPathStaysPlain(t *testing.T) {
	logger := logrus.New()
	opts := middleware.DefaultLoggerOptions()
	opts.Entrypoint = "server"

	h := middleware.WithLogger(logger, opts)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/vehicles/veh-1/edit", nil)
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
}

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta"`
}
