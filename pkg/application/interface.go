package application

import (
	"embed"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/eventbus"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

// Controller is a mountable group of routes. Key must be unique across the
// app; registering a controller with an existing key replaces it.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature package into the application at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the registry every module registers itself into and the
// server is assembled from.
type Application interface {
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	HashFsAssets() []*hashfs.FS
	Bundle() *i18n.Bundle
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	GetSupportedLanguages() []string
	Service(service interface{}) interface{}

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterNavItems(items ...types.NavigationItem)
	RegisterServices(services ...interface{})
}
