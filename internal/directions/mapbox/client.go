// Package mapbox provides a client for the Mapbox Directions API v5.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/provider/resilience"
)

const (
	// ProviderName identifies this directions provider.
	ProviderName = "mapbox"

	// DefaultBaseURL is the Mapbox API base URL.
	DefaultBaseURL = "https://api.mapbox.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Mapbox client.
type ClientConfig struct {
	// AccessToken is the Mapbox access token (required).
	AccessToken string

	// BaseURL is the API base URL (optional, defaults to the Mapbox API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Mapbox Directions API client.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  HTTPDoer
	logger      zerolog.Logger
}

// NewClient creates a new Mapbox Directions client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     baseURL,
		httpClient:  httpClient,
		logger:      cfg.Logger,
	}
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
	overview := "simplified"
	if req.FullOverview {
		overview = "full"
	}

	// Mapbox expects {lon},{lat};{lon},{lat} path coordinates.
	coords := fmt.Sprintf("%f,%f;%f,%f",
		req.Origin.Lon, req.Origin.Lat,
		req.Destination.Lon, req.Destination.Lat,
	)

	query := url.Values{}
	query.Set("access_token", c.accessToken)
	query.Set("overview", overview)
	query.Set("geometries", "polyline6")
	query.Set("alternatives", "false")

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s?%s",
		c.baseURL, mapboxProfile(req.Profile), url.PathEscape(coords), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("profile", string(req.Profile)).
		Float64("origin_lat", req.Origin.Lat).
		Float64("origin_lon", req.Origin.Lon).
		Float64("dest_lat", req.Destination.Lat).
		Float64("dest_lon", req.Destination.Lon).
		Msg("requesting directions from Mapbox")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &directions.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach directions provider",
			Err:      directions.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, respBody)
	}

	var mbResp mapboxResponse
	if err := json.Unmarshal(respBody, &mbResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// Mapbox signals routing failures in the body code with HTTP 200.
	if mbResp.Code != codeOK {
		return nil, c.handleBodyCode(mbResp)
	}

	routes := make([]directions.Route, 0, len(mbResp.Routes))
	for _, r := range mbResp.Routes {
		routes = append(routes, directions.Route{
			GeometryPolyline: r.Geometry,
			DistanceMeters:   r.Distance,
			DurationSeconds:  r.Duration,
		})
	}

	c.logger.Debug().
		Int("route_count", len(routes)).
		Msg("received directions from Mapbox")

	return &directions.Response{
		Routes:    routes,
		Provider:  ProviderName,
		FetchedAt: time.Now(),
	}, nil
}

// mapboxProfile maps domain profiles onto Mapbox profile path segments.
func mapboxProfile(p directions.Profile) string {
	switch p {
	case directions.ProfileWalking:
		return "walking"
	case directions.ProfileCycling:
		return "cycling"
	default:
		return "driving"
	}
}

// handleBodyCode maps Mapbox body-level error codes to domain errors.
func (c *Client) handleBodyCode(resp mapboxResponse) error {
	switch resp.Code {
	case codeNoRoute, codeNoSegment:
		return &directions.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  "no route found between the given points",
			Err:      directions.ErrNoRouteFound,
		}
	case codeInvalidInput:
		return &directions.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  resp.Message,
			Err:      directions.ErrInvalidCoordinates,
		}
	default:
		return &directions.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  resp.Message,
			Err:      directions.ErrProviderUnavailable,
		}
	}
}

// handleErrorResponse maps HTTP-level errors to domain errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var mbErr mapboxResponse
	_ = json.Unmarshal(body, &mbErr)

	switch statusCode {
	case http.StatusTooManyRequests:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      directions.ErrRateLimitExceeded,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "FORBIDDEN",
			Message:  "API access denied - check access token configuration",
			Err:      directions.ErrProviderUnavailable,
		}
	case http.StatusUnprocessableEntity:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "INVALID_INPUT",
			Message:  mbErr.Message,
			Err:      directions.ErrInvalidCoordinates,
		}
	default:
		if statusCode >= 500 {
			return &directions.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("SERVER_%d", statusCode),
				Message:  "directions provider is temporarily unavailable",
				Err:      directions.ErrProviderUnavailable,
			}
		}
		return &directions.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  mbErr.Message,
			Err:      directions.ErrProviderUnavailable,
		}
	}
}
