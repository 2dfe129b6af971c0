package remote

import (
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
)

func toRegistrationModel(entity registration.Registration) *RegistrationModel {
	return &RegistrationModel{
		OwnerID:          entity.OwnerID(),
		PlateNo:          entity.PlateNo(),
		Manufacturer:     entity.Manufacturer(),
		Model:            entity.Model(),
		ManufacturedYear: entity.ManufacturedYear(),
		VehicleType:      entity.VehicleType(),
		Color:            entity.Color(),
		Owner:            entity.Owner(),
		RegistrationDate: formatRegistrationDate(entity.RegistrationDate()),
	}
}

func toDomainRegistration(m *RegistrationModel) registration.Registration {
	return registration.Hydrate(
		m.Identifier(),
		m.OwnerID,
		m.PlateNo,
		m.Manufacturer,
		m.Model,
		m.ManufacturedYear,
		m.VehicleType,
		m.Color,
		m.Owner,
		parseRegistrationDate(m.RegistrationDate),
	)
}
