package directions

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the directions service.
type ServiceConfig struct {
	// Provider is the directions data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache responses (default: 2 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the cache grid cell size in degrees (default: 0.0005,
	// roughly 55m; store positions are fixed, so cells can be tight).
	CacheGridSize float64

	// StaleIfErrorTTL allows serving stale responses on provider errors
	// (default: 10 minutes).
	StaleIfErrorTTL time.Duration
}

// Service provides directions with validation and short-lived caching, so
// that reselecting the same store does not re-bill the provider.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	cacheGridSize   float64
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedResponse
}

type cachedResponse struct {
	response  *Response
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new directions service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 2 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.0005
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 10 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		cacheGridSize:   cacheGridSize,
		staleIfErrorTTL: staleIfErrorTTL,
		cache:           make(map[string]*cachedResponse),
	}
}

// GetDirections returns route candidates between two points, serving from
// cache when possible.
func (s *Service) GetDirections(ctx context.Context, req Request) (*Response, error) {
	if err := validateCoordinate(req.Origin); err != nil {
		return nil, &Error{
			Provider: s.provider.Name(),
			Code:     "INVALID_ORIGIN",
			Message:  "invalid origin coordinates",
			Err:      ErrInvalidCoordinates,
		}
	}
	if err := validateCoordinate(req.Destination); err != nil {
		return nil, &Error{
			Provider: s.provider.Name(),
			Code:     "INVALID_DESTINATION",
			Message:  "invalid destination coordinates",
			Err:      ErrInvalidCoordinates,
		}
	}
	if !req.Profile.Valid() {
		return nil, &Error{
			Provider: s.provider.Name(),
			Code:     "INVALID_PROFILE",
			Message:  fmt.Sprintf("unknown travel profile %q", req.Profile),
			Err:      ErrInvalidCoordinates,
		}
	}

	key := s.cacheKey(req)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.logger.Debug().Str("cache_key", key).Msg("directions cache hit")
		return cached.response, nil
	}
	s.mu.RUnlock()

	return s.fetch(ctx, req, key)
}

func (s *Service) fetch(ctx context.Context, req Request, key string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return cached.response, nil
	}

	s.logger.Debug().
		Float64("origin_lat", req.Origin.Lat).
		Float64("origin_lon", req.Origin.Lon).
		Float64("dest_lat", req.Destination.Lat).
		Float64("dest_lon", req.Destination.Lon).
		Str("profile", string(req.Profile)).
		Str("provider", s.provider.Name()).
		Msg("fetching directions from provider")

	resp, err := s.provider.GetDirections(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).
			Str("profile", string(req.Profile)).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch directions")

		// Stale-if-error: reselecting a store during a provider outage
		// still shows the last known route.
		if cached, ok := s.cache[key]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Msg("serving stale directions due to provider error")
				return cached.response, nil
			}
			delete(s.cache, key)
		}

		return nil, err
	}

	now := time.Now()
	s.cache[key] = &cachedResponse{
		response:  resp,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	return resp, nil
}

// cacheKey quantizes both endpoints onto a grid so that equivalent requests
// share an entry. Format: {profile}:{overview}:{origin}:{dest}.
func (s *Service) cacheKey(req Request) string {
	snap := func(v float64) float64 {
		return math.Floor(v/s.cacheGridSize) * s.cacheGridSize
	}
	overview := "simplified"
	if req.FullOverview {
		overview = "full"
	}
	return fmt.Sprintf("%s:%s:%.4f,%.4f:%.4f,%.4f",
		req.Profile, overview,
		snap(req.Origin.Lat), snap(req.Origin.Lon),
		snap(req.Destination.Lat), snap(req.Destination.Lon),
	)
}

// InvalidateCache clears all cached responses.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedResponse)
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func validateCoordinate(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}
