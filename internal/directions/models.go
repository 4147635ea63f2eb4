// Package directions provides route computation between an origin and a
// store destination via pluggable routing providers.
package directions

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for directions operations.
var (
	// ErrProviderUnavailable indicates the provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("directions provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for directions providers.
type Provider interface {
	// GetDirections retrieves route candidates between two points.
	GetDirections(ctx context.Context, req Request) (*Response, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
	// SupportedProfiles returns the travel profiles this provider supports.
	SupportedProfiles() []Profile
}

// Profile represents a travel mode.
type Profile string

const (
	// ProfileDriving requests car routing.
	ProfileDriving Profile = "driving"
	// ProfileWalking requests pedestrian routing.
	ProfileWalking Profile = "walking"
	// ProfileCycling requests bike routing.
	ProfileCycling Profile = "cycling"
)

// Valid reports whether p is a known profile.
func (p Profile) Valid() bool {
	switch p {
	case ProfileDriving, ProfileWalking, ProfileCycling:
		return true
	}
	return false
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Request is the request for computing routes.
type Request struct {
	Origin      Coordinate
	Destination Coordinate
	Profile     Profile

	// FullOverview requests the complete route geometry rather than a
	// simplified overview. Set when the geometry will be drawn.
	FullOverview bool
}

// Response is the response containing route candidates. Candidate 0 is the
// provider's preferred route; callers use it exclusively (no ranking here).
type Response struct {
	Routes    []Route
	Provider  string
	FetchedAt time.Time
}

// Route represents a single route candidate.
type Route struct {
	// GeometryPolyline is the encoded route geometry at precision 6.
	GeometryPolyline string
	// DistanceMeters is the total route length in meters.
	DistanceMeters float64
	// DurationSeconds is the estimated travel time in seconds.
	DurationSeconds float64
}

// Error provides detailed error information from a directions provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying sentinel error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
