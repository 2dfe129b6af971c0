package registry

import (
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/types"
)

var RegistrationsLink = types.NavigationItem{
	Name: "NavigationLinks.Registrations",
	Href: "/vehicles",
}

var NewRegistrationLink = types.NavigationItem{
	Name: "NavigationLinks.NewRegistration",
	Href: "/vehicles/new",
}

var NavItems = []types.NavigationItem{
	RegistrationsLink,
	NewRegistrationLink,
}
