package mappers

import (
	"strconv"
	"time"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/presentation/viewmodels"
)

func RegistrationToViewModel(r registration.Registration) *viewmodels.Registration {
	return &viewmodels.Registration{
		ID:               r.ID(),
		OwnerID:          r.OwnerID(),
		PlateNo:          r.PlateNo(),
		Manufacturer:     r.Manufacturer(),
		Model:            r.Model(),
		ManufacturedYear: strconv.Itoa(r.ManufacturedYear()),
		VehicleType:      r.VehicleType(),
		Color:            r.Color(),
		Owner:            r.Owner(),
		RegistrationDate: formatDate(r.RegistrationDate()),
	}
}

// RegistrationToFormVM pre-fills the edit form. Dates render as the
// calendar-day portion so a native date input accepts them.
func RegistrationToFormVM(r registration.Registration) *viewmodels.RegistrationFormVM {
	return &viewmodels.RegistrationFormVM{
		OwnerID:          r.OwnerID(),
		PlateNo:          r.PlateNo(),
		Manufacturer:     r.Manufacturer(),
		Model:            r.Model(),
		ManufacturedYear: strconv.Itoa(r.ManufacturedYear()),
		VehicleType:      r.VehicleType(),
		Color:            r.Color(),
		Owner:            r.Owner(),
		RegistrationDate: formatDate(r.RegistrationDate()),
	}
}

// CreateDTOToFormVM echoes submitted values back into the form after a
// failed save so the user does not retype them.
func CreateDTOToFormVM(dto *registration.CreateDTO) *viewmodels.RegistrationFormVM {
	return &viewmodels.RegistrationFormVM{
		OwnerID:          dto.OwnerID,
		PlateNo:          dto.PlateNo,
		Manufacturer:     dto.Manufacturer,
		Model:            dto.Model,
		ManufacturedYear: formatYear(dto.ManufacturedYear),
		VehicleType:      dto.VehicleType,
		Color:            dto.Color,
		Owner:            dto.Owner,
		RegistrationDate: formatDate(dto.RegistrationDate),
	}
}

func UpdateDTOToFormVM(dto *registration.UpdateDTO) *viewmodels.RegistrationFormVM {
	return &viewmodels.RegistrationFormVM{
		OwnerID:          dto.OwnerID,
		PlateNo:          dto.PlateNo,
		Manufacturer:     dto.Manufacturer,
		Model:            dto.Model,
		ManufacturedYear: formatYear(dto.ManufacturedYear),
		VehicleType:      dto.VehicleType,
		Color:            dto.Color,
		Owner:            dto.Owner,
		RegistrationDate: formatDate(dto.RegistrationDate),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// formatYear keeps an untouched year input empty instead of showing 0.
func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
