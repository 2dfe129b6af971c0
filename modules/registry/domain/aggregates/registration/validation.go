package registration

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/constants"
)

// MinManufacturedYear is the oldest accepted model year.
const MinManufacturedYear = 1900

// MaxManufacturedYear allows next year's models to be registered ahead of
// time.
func MaxManufacturedYear() int {
	return time.Now().Year() + 1
}

func init() {
	if err := constants.Validate.RegisterValidation("manufactured_year", validateManufacturedYear); err != nil {
		panic(err)
	}
}

func validateManufacturedYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= MinManufacturedYear && year <= MaxManufacturedYear()
}
