package itf

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/eventbus"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/middleware"
)

// SuiteBuilder provides a fluent API for building controller test suites.
// The fake backend starts with the builder so module options can point at
// it before Build.
type SuiteBuilder struct {
	tb      testing.TB
	backend *Backend
	modules []application.Module
}

func NewSuiteBuilder(tb testing.TB) *SuiteBuilder {
	tb.Helper()
	return &SuiteBuilder{
		tb:      tb,
		backend: NewBackend(tb),
	}
}

// WithModules adds modules to load into the test application.
func (b *SuiteBuilder) WithModules(modules ...application.Module) *SuiteBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Backend returns the fake registration backend.
func (b *SuiteBuilder) Backend() *Backend {
	return b.backend
}

// Build assembles the application, loads the modules and prepares a router
// with the server's baseline middleware stack.
func (b *SuiteBuilder) Build() *Suite {
	b.tb.Helper()

	conf := configuration.Use()
	app := application.New(&application.ApplicationOptions{
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	if err := modules.Load(app, b.modules...); err != nil {
		b.tb.Fatal(err)
	}

	router := mux.NewRouter()
	router.Use(
		middleware.WithLogger(conf.Logger(), middleware.DefaultLoggerOptions()),
		middleware.Provide(constants.AppKey, app),
		middleware.RequestParams(),
	)

	return &Suite{
		tb:     b.tb,
		router: router,
		env: &TestEnvironment{
			Ctx:     context.Background(),
			App:     app,
			Backend: b.backend,
		},
	}
}

// Suite drives HTTP requests against registered controllers.
type Suite struct {
	tb     testing.TB
	router *mux.Router
	env    *TestEnvironment
}

func (s *Suite) Env() *TestEnvironment {
	return s.env
}

func (s *Suite) Register(controllers ...application.Controller) *Suite {
	for _, controller := range controllers {
		controller.Register(s.router)
	}
	return s
}

func (s *Suite) GET(path string) *Request    { return s.newRequest(http.MethodGet, path) }
func (s *Suite) POST(path string) *Request   { return s.newRequest(http.MethodPost, path) }
func (s *Suite) PUT(path string) *Request    { return s.newRequest(http.MethodPut, path) }
func (s *Suite) DELETE(path string) *Request { return s.newRequest(http.MethodDelete, path) }

// RunCases executes table-driven cases as subtests.
func (s *Suite) RunCases(cases []*Case) {
	t, ok := s.tb.(*testing.T)
	if !ok {
		s.tb.Fatal("RunCases requires a *testing.T suite")
		return
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			c.run(t, s)
		})
	}
}

// TestEnvironment contains all test dependencies.
type TestEnvironment struct {
	Ctx     context.Context
	App     application.Application
	Backend *Backend
}

// Service retrieves a service from the application.
func (te *TestEnvironment) Service(service interface{}) interface{} {
	return te.App.Service(service)
}

// GetService is a generic helper that retrieves and casts a service.
func GetService[T any](te *TestEnvironment) *T {
	var zero T
	return te.App.Service(zero).(*T)
}
