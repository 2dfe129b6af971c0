package registration

import (
	"strconv"
	"strings"
	"time"
)

// Registration is one vehicle registration record as held by the backend.
// The identifier is assigned by the backend and stays empty until then.
type Registration struct {
	id               string
	ownerID          string
	plateNo          string
	manufacturer     string
	model            string
	manufacturedYear int
	vehicleType      string
	color            string
	owner            string
	registrationDate time.Time
}

type Option func(*Registration)

func WithModel(model string) Option {
	return func(r *Registration) {
		r.model = strings.TrimSpace(model)
	}
}

func WithColor(color string) Option {
	return func(r *Registration) {
		r.color = strings.TrimSpace(color)
	}
}

func WithRegistrationDate(date time.Time) Option {
	return func(r *Registration) {
		r.registrationDate = date
	}
}

func New(
	ownerID string,
	plateNo string,
	manufacturer string,
	vehicleType string,
	owner string,
	manufacturedYear int,
	opts ...Option,
) Registration {
	r := Registration{
		ownerID:          strings.TrimSpace(ownerID),
		plateNo:          strings.TrimSpace(plateNo),
		manufacturer:     strings.TrimSpace(manufacturer),
		vehicleType:      strings.TrimSpace(vehicleType),
		owner:            strings.TrimSpace(owner),
		manufacturedYear: manufacturedYear,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.registrationDate.IsZero() {
		r.registrationDate = Today()
	}
	return r
}

func Hydrate(
	id string,
	ownerID string,
	plateNo string,
	manufacturer string,
	model string,
	manufacturedYear int,
	vehicleType string,
	color string,
	owner string,
	registrationDate time.Time,
) Registration {
	return Registration{
		id:               strings.TrimSpace(id),
		ownerID:          strings.TrimSpace(ownerID),
		plateNo:          strings.TrimSpace(plateNo),
		manufacturer:     strings.TrimSpace(manufacturer),
		model:            strings.TrimSpace(model),
		manufacturedYear: manufacturedYear,
		vehicleType:      strings.TrimSpace(vehicleType),
		color:            strings.TrimSpace(color),
		owner:            strings.TrimSpace(owner),
		registrationDate: registrationDate,
	}
}

// Today returns the current calendar day in UTC. Registrations submitted
// without an explicit date default to it.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (r Registration) ID() string                  { return r.id }
func (r Registration) OwnerID() string             { return r.ownerID }
func (r Registration) PlateNo() string             { return r.plateNo }
func (r Registration) Manufacturer() string        { return r.manufacturer }
func (r Registration) Model() string               { return r.model }
func (r Registration) ManufacturedYear() int       { return r.manufacturedYear }
func (r Registration) VehicleType() string         { return r.vehicleType }
func (r Registration) Color() string               { return r.color }
func (r Registration) Owner() string               { return r.owner }
func (r Registration) RegistrationDate() time.Time { return r.registrationDate }
func (r Registration) IsZero() bool                { return r.id == "" && r.plateNo == "" }

// SearchIndex returns the lower-cased string form of every field joined by
// spaces. Search matches on substrings of it, so a query can hit any field,
// including year digits inside unrelated values.
func (r Registration) SearchIndex() string {
	parts := []string{
		r.id,
		r.ownerID,
		r.plateNo,
		r.manufacturer,
		r.model,
		strconv.Itoa(r.manufacturedYear),
		r.vehicleType,
		r.color,
		r.owner,
	}
	if !r.registrationDate.IsZero() {
		parts = append(parts, r.registrationDate.Format(time.DateOnly))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
