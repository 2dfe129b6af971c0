package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/intl"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/serrors"
)

type CreateDTO struct {
	OwnerID          string    `json:"ownerId" validate:"required"`
	PlateNo          string    `json:"plateNo" validate:"required"`
	Manufacturer     string    `json:"manufacturer" validate:"required"`
	Model            string    `json:"model"`
	ManufacturedYear int       `json:"manufacturedYear" validate:"required,manufactured_year"`
	VehicleType      string    `json:"vehicle" validate:"required"`
	Color            string    `json:"color"`
	Owner            string    `json:"owner" validate:"required"`
	RegistrationDate time.Time `json:"registrationDate"`
}

func (d *CreateDTO) Normalize() {
	d.OwnerID = strings.TrimSpace(d.OwnerID)
	d.PlateNo = strings.TrimSpace(d.PlateNo)
	d.Manufacturer = strings.TrimSpace(d.Manufacturer)
	d.Model = strings.TrimSpace(d.Model)
	d.VehicleType = strings.TrimSpace(d.VehicleType)
	d.Color = strings.TrimSpace(d.Color)
	d.Owner = strings.TrimSpace(d.Owner)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	l, ok := intl.UseLocalizer(ctx)
	if !ok {
		panic(intl.ErrNoLocalizer)
	}

	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	validatorErrs := errs.(validator.ValidationErrors)
	for field, err := range serrors.ProcessValidatorErrors(validatorErrs, registrationFieldLocaleKey) {
		validationErrors[field] = err
	}

	return serrors.LocalizeValidationErrors(validationErrors, l), false
}

func (d *CreateDTO) ToEntity() Registration {
	return New(
		d.OwnerID,
		d.PlateNo,
		d.Manufacturer,
		d.VehicleType,
		d.Owner,
		d.ManufacturedYear,
		WithModel(d.Model),
		WithColor(d.Color),
		WithRegistrationDate(d.RegistrationDate),
	)
}

func registrationFieldLocaleKey(field string) string {
	switch field {
	case "OwnerID", "PlateNo", "Manufacturer", "Model", "ManufacturedYear",
		"VehicleType", "Color", "Owner", "RegistrationDate":
		return fmt.Sprintf("Registrations.Fields.%s", field)
	default:
		return ""
	}
}
