package registration

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an identifier resolves to no known record.
var ErrNotFound = errors.New("registration not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Registration, error)
	Create(ctx context.Context, r Registration) error
	Update(ctx context.Context, id string, r Registration) (Registration, error)
	Delete(ctx context.Context, id string) (Registration, error)
}
