package remote

import (
	"strings"
	"time"
)

// RegistrationModel mirrors the backend wire format. The backend stores
// records under `_id` but some responses use `id`, so both are accepted.
type RegistrationModel struct {
	ID               string `json:"_id,omitempty"`
	AltID            string `json:"id,omitempty"`
	OwnerID          string `json:"ownerId"`
	PlateNo          string `json:"plateNo"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model,omitempty"`
	ManufacturedYear int    `json:"manufacturedYear"`
	VehicleType      string `json:"vehicle"`
	Color            string `json:"color,omitempty"`
	Owner            string `json:"owner"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

func (m *RegistrationModel) Identifier() string {
	if strings.TrimSpace(m.ID) != "" {
		return strings.TrimSpace(m.ID)
	}
	return strings.TrimSpace(m.AltID)
}

type registrationsResponse struct {
	ExistingRegistrations []*RegistrationModel `json:"existingRegistrations"`
}

type mutationResponse struct {
	Success             bool               `json:"success"`
	Registration        *RegistrationModel `json:"registration"`
	DeletedRegistration *RegistrationModel `json:"deletedRegistration"`
}

var registrationDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateOnly,
}

// parseRegistrationDate accepts the date formats the backend is known to
// emit. Unparseable values map to the zero time.
func parseRegistrationDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range registrationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatRegistrationDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
