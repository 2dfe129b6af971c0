package modules

import (
	"slices"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		registry.NewModule(nil),
	}

	NavLinks = slices.Concat(
		registry.NavItems,
	)
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
