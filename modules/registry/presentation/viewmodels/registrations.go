package viewmodels

type Registration struct {
	ID               string
	OwnerID          string
	PlateNo          string
	Manufacturer     string
	Model            string
	ManufacturedYear string
	VehicleType      string
	Color            string
	Owner            string
	RegistrationDate string
	EditURL          string
	DeleteURL        string
}

type RegistrationsListPageProps struct {
	Items        []*Registration
	Q            string
	Loading      bool
	BannerError  string
	FlashSuccess string
	FlashError   string
	NewURL       string
	SearchURL    string
}

type RegistrationFormVM struct {
	OwnerID          string
	PlateNo          string
	Manufacturer     string
	Model            string
	ManufacturedYear string
	VehicleType      string
	Color            string
	Owner            string
	RegistrationDate string
}

type RegistrationFormPageProps struct {
	Form        *RegistrationFormVM
	Errors      map[string]string
	BannerError string
	PostTo      string
	BackURL     string
	Editing     bool
	MinYear     int
	MaxYear     int
}
