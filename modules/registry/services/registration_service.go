package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/modules/registry/domain/aggregates/registration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/eventbus"
)

// RefreshError reports a failed cache refresh after an otherwise successful
// mutation. Callers treat the mutation as done and surface the refresh
// failure on the list instead of the form.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// RegistrationService holds the client-side copy of the backend record set.
// The cache is replaced wholesale by a full re-fetch after every mutation,
// never patched in place.
type RegistrationService struct {
	repo      registration.Repository
	publisher eventbus.EventBus

	mu     sync.RWMutex
	cache  []registration.Registration
	loaded bool

	inflight atomic.Int64
}

func NewRegistrationService(repo registration.Repository, publisher eventbus.EventBus) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		publisher: publisher,
	}
}

// Loading reports whether any backend call is currently in flight. A hung
// backend call keeps it set until the transport gives up.
func (s *RegistrationService) Loading() bool {
	return s.inflight.Load() > 0
}

// RefreshAll fetches the full record set and replaces the cache. The cache
// keeps its previous contents when the fetch fails.
func (s *RegistrationService) RefreshAll(ctx context.Context) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	entities, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = entities
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// GetAll returns the cached record set, fetching it first if the cache has
// never been loaded.
func (s *RegistrationService) GetAll(ctx context.Context) ([]registration.Registration, error) {
	s.mu.RLock()
	if s.loaded {
		out := slices.Clone(s.cache)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	if err := s.RefreshAll(ctx); err != nil {
		return nil, err
	}
	return s.Cached(), nil
}

// Cached returns a copy of the cache without touching the backend.
func (s *RegistrationService) Cached() []registration.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cache)
}

func (s *RegistrationService) GetByID(ctx context.Context, id string) (registration.Registration, error) {
	entities, err := s.GetAll(ctx)
	if err != nil {
		return registration.Registration{}, err
	}
	for _, entity := range entities {
		if entity.ID() == id {
			return entity, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

// Search filters the record set by a case-insensitive substring match over
// the string form of every field. An empty query returns all records.
func (s *RegistrationService) Search(ctx context.Context, q string) ([]registration.Registration, error) {
	entities, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return entities, nil
	}
	matched := make([]registration.Registration, 0, len(entities))
	for _, entity := range entities {
		if strings.Contains(entity.SearchIndex(), q) {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

func (s *RegistrationService) Create(ctx context.Context, data *registration.CreateDTO) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	entity := data.ToEntity()
	if err := s.repo.Create(ctx, entity); err != nil {
		return err
	}
	s.publisher.Publish(registration.CreatedEvent{Source: registration.NewSource(ctx), Data: entity})

	if err := s.RefreshAll(ctx); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}

func (s *RegistrationService) Update(ctx context.Context, id string, data *registration.UpdateDTO) (registration.Registration, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	updated, err := s.repo.Update(ctx, id, data.ToEntity())
	if err != nil {
		return registration.Registration{}, err
	}
	s.publisher.Publish(registration.UpdatedEvent{Source: registration.NewSource(ctx), Result: updated})

	if err := s.RefreshAll(ctx); err != nil {
		return updated, &RefreshError{Err: err}
	}
	return updated, nil
}

func (s *RegistrationService) Remove(ctx context.Context, id string) (registration.Registration, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return registration.Registration{}, err
	}
	s.publisher.Publish(registration.DeletedEvent{Source: registration.NewSource(ctx), Result: deleted})

	if err := s.RefreshAll(ctx); err != nil {
		return deleted, &RefreshError{Err: err}
	}
	return deleted, nil
}
