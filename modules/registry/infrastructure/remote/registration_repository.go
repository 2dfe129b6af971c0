package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
)

const registrationsBasePath = "/registrations"

type RegistrationRepository struct {
	client *Client
}

func NewRegistrationRepository(client *Client) registration.Repository {
	return &RegistrationRepository{client: client}
}

func (r *RegistrationRepository) GetAll(ctx context.Context) ([]registration.Registration, error) {
	var out registrationsResponse
	if err := r.client.doJSON(ctx, http.MethodGet, registrationsBasePath, nil, &out); err != nil {
		return nil, err
	}
	entities := make([]registration.Registration, 0, len(out.ExistingRegistrations))
	for _, model := range out.ExistingRegistrations {
		if model == nil {
			continue
		}
		entities = append(entities, toDomainRegistration(model))
	}
	return entities, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, entity registration.Registration) error {
	var out mutationResponse
	return r.client.doJSON(ctx, http.MethodPost, registrationsBasePath+"/new", toRegistrationModel(entity), &out)
}

func (r *RegistrationRepository) Update(ctx context.Context, id string, entity registration.Registration) (registration.Registration, error) {
	var out mutationResponse
	path := registrationsBasePath + "/update/" + url.PathEscape(id)
	if err := r.client.doJSON(ctx, http.MethodPut, path, toRegistrationModel(entity), &out); err != nil {
		return registration.Registration{}, err
	}
	if out.Registration == nil {
		// Older backends confirm the update without echoing the record.
		model := toRegistrationModel(entity)
		model.ID = id
		return toDomainRegistration(model), nil
	}
	return toDomainRegistration(out.Registration), nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) (registration.Registration, error) {
	var out mutationResponse
	path := registrationsBasePath + "/delete/" + url.PathEscape(id)
	if err := r.client.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return registration.Registration{}, err
	}
	if out.DeletedRegistration == nil {
		return registration.Registration{}, nil
	}
	return toDomainRegistration(out.DeletedRegistration), nil
}
