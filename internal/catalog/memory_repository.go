package catalog

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository backed by
// the parsed feature collection. Used when no database is configured, and in
// tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	locations []Location
}

// NewInMemoryRepository creates a repository seeded with the given locations.
func NewInMemoryRepository(locations []Location) *InMemoryRepository {
	cpy := make([]Location, len(locations))
	copy(cpy, locations)
	return &InMemoryRepository{locations: cpy}
}

// List retrieves all locations in catalog order.
func (r *InMemoryRepository) List(_ context.Context) ([]Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cpy := make([]Location, len(r.locations))
	copy(cpy, r.locations)
	return cpy, nil
}

// Get retrieves the location at the given index.
func (r *InMemoryRepository) Get(_ context.Context, index int) (*Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.locations) {
		return nil, ErrLocationNotFound
	}

	cpy := r.locations[index]
	return &cpy, nil
}

// Count returns the number of catalog entries.
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locations), nil
}

// SetDistance updates the distance label for the location at index.
func (r *InMemoryRepository) SetDistance(_ context.Context, index int, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.locations) {
		return ErrLocationNotFound
	}

	r.locations[index].Distance = label
	return nil
}

// Replace swaps the whole catalog for a freshly built one.
func (r *InMemoryRepository) Replace(_ context.Context, locations []Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := make([]Location, len(locations))
	copy(cpy, locations)
	r.locations = cpy
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
