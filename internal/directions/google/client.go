// Package google provides a directions provider backed by the Google Maps
// Directions API.
package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/pkg/polyline"
)

// ProviderName identifies this directions provider.
const ProviderName = "google"

// directionsAPI is the slice of *maps.Client this provider needs. Tests
// substitute a fake.
type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// ClientConfig holds configuration for the Google Maps directions client.
type ClientConfig struct {
	// APIKey is the Google Maps API key (required unless API is set).
	APIKey string

	// API overrides the underlying maps client (optional, used in tests).
	API directionsAPI

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Maps Directions API client.
type Client struct {
	api    directionsAPI
	logger zerolog.Logger
}

// NewClient creates a new Google Maps directions client.
func NewClient(cfg ClientConfig) (*Client, error) {
	api := cfg.API
	if api == nil {
		mc, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("creating maps client: %w", err)
		}
		api = mc
	}

	return &Client{
		api:    api,
		logger: cfg.Logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SupportedProfiles returns the supported travel profiles.
func (c *Client) SupportedProfiles() []directions.Profile {
	return []directions.Profile{
		directions.ProfileDriving,
		directions.ProfileWalking,
		directions.ProfileCycling,
	}
}

// GetDirections retrieves route candidates between two points.
func (c *Client) GetDirections(ctx context.Context, req directions.Request) (*directions.Response, error) {
	dr := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", req.Origin.Lat, req.Origin.Lon),
		Destination: fmt.Sprintf("%f,%f", req.Destination.Lat, req.Destination.Lon),
		Mode:        travelMode(req.Profile),
	}

	c.logger.Debug().
		Str("profile", string(req.Profile)).
		Str("origin", dr.Origin).
		Str("destination", dr.Destination).
		Msg("requesting directions from Google Maps")

	googleRoutes, _, err := c.api.Directions(ctx, dr)
	if err != nil {
		return nil, mapError(err)
	}

	routes := make([]directions.Route, 0, len(googleRoutes))
	for _, gr := range googleRoutes {
		var distanceMeters float64
		var durationSeconds float64
		for _, leg := range gr.Legs {
			distanceMeters += float64(leg.Distance.Meters)
			durationSeconds += leg.Duration.Seconds()
		}

		routes = append(routes, directions.Route{
			GeometryPolyline: upgradeGeometry(gr.OverviewPolyline.Points),
			DistanceMeters:   distanceMeters,
			DurationSeconds:  durationSeconds,
		})
	}

	c.logger.Debug().
		Int("route_count", len(routes)).
		Msg("received directions from Google Maps")

	return &directions.Response{
		Routes:    routes,
		Provider:  ProviderName,
		FetchedAt: time.Now(),
	}, nil
}

// upgradeGeometry re-encodes the Google precision-5 overview polyline at
// precision 6 so all providers hand back the same encoding.
func upgradeGeometry(encoded string) string {
	if encoded == "" {
		return ""
	}
	coords := polyline.Decode(encoded, polyline.Precision5)
	return polyline.Encode(coords, polyline.Precision6)
}

// travelMode maps domain profiles onto Google travel modes.
func travelMode(p directions.Profile) maps.Mode {
	switch p {
	case directions.ProfileWalking:
		return maps.TravelModeWalking
	case directions.ProfileCycling:
		return maps.TravelModeBicycling
	default:
		return maps.TravelModeDriving
	}
}

// mapError maps Google Maps client errors to domain errors.
func mapError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "ZERO_RESULTS"), strings.Contains(msg, "NOT_FOUND"):
		return &directions.Error{
			Provider: ProviderName,
			Code:     "ZERO_RESULTS",
			Message:  "no route found between the given points",
			Err:      directions.ErrNoRouteFound,
		}
	case strings.Contains(msg, "OVER_QUERY_LIMIT"), strings.Contains(msg, "OVER_DAILY_LIMIT"):
		return &directions.Error{
			Provider: ProviderName,
			Code:     "OVER_QUERY_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      directions.ErrRateLimitExceeded,
		}
	case strings.Contains(msg, "INVALID_REQUEST"):
		return &directions.Error{
			Provider: ProviderName,
			Code:     "INVALID_REQUEST",
			Message:  msg,
			Err:      directions.ErrInvalidCoordinates,
		}
	default:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach directions provider",
			Err:      directions.ErrProviderUnavailable,
		}
	}
}
