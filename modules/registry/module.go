package registry

import (
	"embed"
	"net/http"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/handlers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/infrastructure/remote"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/assets"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/controllers"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/services"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

// ModuleOptions overrides backend connectivity, mainly for tests.
type ModuleOptions struct {
	BackendBaseURL string
	HTTPClient     *http.Client
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{
		options: opts,
	}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterHashFsAssets(assets.HashFS)

	conf := configuration.Use()
	baseURL := m.options.BackendBaseURL
	if baseURL == "" {
		baseURL = conf.Backend.BaseURL
	}

	client, err := remote.NewClient(remote.ClientOptions{
		BaseURL:         baseURL,
		Timeout:         conf.Backend.RequestTimeout,
		RequestIDHeader: conf.RequestIDHeader,
		HTTPClient:      m.options.HTTPClient,
		Logger:          conf.Logger(),
	})
	if err != nil {
		return err
	}

	app.RegisterServices(
		services.NewRegistrationService(remote.NewRegistrationRepository(client), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewRegistrationsController(app),
		controllers.NewHealthController(app),
	)

	handlers.RegisterRegistrationEventHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "registry"
}
