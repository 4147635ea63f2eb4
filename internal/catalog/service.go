package catalog

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultOrigin is the fixed mock device location used as the route origin
// when no real device position is supplied.
var DefaultOrigin = Coordinate{Lat: 40.713469, Lon: -74.006735}

// ServiceConfig holds configuration for the catalog service.
type ServiceConfig struct {
	// Repository is the catalog store.
	Repository Repository

	// Origin is the mock device location. Defaults to DefaultOrigin.
	Origin Coordinate

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides read access to the catalog and single-writer distance
// label updates.
type Service struct {
	repo   Repository
	origin Coordinate
	logger zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) *Service {
	origin := cfg.Origin
	if origin == (Coordinate{}) {
		origin = DefaultOrigin
	}

	return &Service{
		repo:   cfg.Repository,
		origin: origin,
		logger: cfg.Logger,
	}
}

// Origin returns the mock device location.
func (s *Service) Origin() Coordinate {
	return s.origin
}

// List retrieves all locations in catalog order.
func (s *Service) List(ctx context.Context) ([]Location, error) {
	return s.repo.List(ctx)
}

// Get retrieves the location at the given index.
func (s *Service) Get(ctx context.Context, index int) (*Location, error) {
	return s.repo.Get(ctx, index)
}

// Count returns the number of catalog entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// SetDistance updates the distance label for the location at index.
func (s *Service) SetDistance(ctx context.Context, index int, label string) error {
	if err := s.repo.SetDistance(ctx, index, label); err != nil {
		return err
	}

	s.logger.Debug().
		Int("index", index).
		Str("distance", label).
		Msg("distance label updated")
	return nil
}

// Reload rebuilds the catalog from a feature collection document and
// replaces the stored entries. Returns the new entry count.
func (s *Service) Reload(ctx context.Context, data []byte) (int, error) {
	built, err := BuildFromFeatureCollection(data, s.origin, s.logger)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Replace(ctx, built.Locations); err != nil {
		return 0, err
	}

	s.logger.Info().
		Int("locations", len(built.Locations)).
		Msg("catalog reloaded")
	return len(built.Locations), nil
}
