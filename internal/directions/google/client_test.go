package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"

	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/pkg/polyline"
)

type fakeAPI struct {
	routes []maps.Route
	err    error

	gotRequest *maps.DirectionsRequest
}

func (f *fakeAPI) Directions(_ context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	f.gotRequest = r
	return f.routes, nil, f.err
}

func newTestClient(api *fakeAPI) *Client {
	client, err := NewClient(ClientConfig{API: api, Logger: zerolog.Nop()})
	if err != nil {
		panic(err)
	}
	return client
}

func TestGetDirections(t *testing.T) {
	coords := []polyline.Coordinate{
		{Lat: 40.713469, Lon: -74.006735},
		{Lat: 40.714500, Lon: -74.005200},
	}
	encoded5 := polyline.Encode(coords, polyline.Precision5)

	api := &fakeAPI{
		routes: []maps.Route{
			{
				OverviewPolyline: maps.Polyline{Points: encoded5},
				Legs: []*maps.Leg{
					{Distance: maps.Distance{Meters: 900}, Duration: 120 * time.Second},
					{Distance: maps.Distance{Meters: 700}, Duration: 90 * time.Second},
				},
			},
		},
	}
	client := newTestClient(api)

	resp, err := client.GetDirections(context.Background(), directions.Request{
		Origin:      directions.Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: directions.Coordinate{Lat: 40.714500, Lon: -74.005200},
		Profile:     directions.ProfileCycling,
	})
	if err != nil {
		t.Fatalf("GetDirections() error = %v", err)
	}

	if resp.Provider != ProviderName {
		t.Errorf("Provider = %q, want %q", resp.Provider, ProviderName)
	}
	if len(resp.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(resp.Routes))
	}

	route := resp.Routes[0]
	if route.DistanceMeters != 1600 {
		t.Errorf("DistanceMeters = %v, want 1600 (sum of legs)", route.DistanceMeters)
	}
	if route.DurationSeconds != 210 {
		t.Errorf("DurationSeconds = %v, want 210 (sum of legs)", route.DurationSeconds)
	}

	// Geometry must come back re-encoded at precision 6.
	decoded := polyline.Decode(route.GeometryPolyline, polyline.Precision6)
	if len(decoded) != len(coords) {
		t.Fatalf("decoded %d points, want %d", len(decoded), len(coords))
	}
	for i := range coords {
		if diff := decoded[i].Lat - coords[i].Lat; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("point %d lat = %v, want ~%v", i, decoded[i].Lat, coords[i].Lat)
		}
	}

	if api.gotRequest.Mode != maps.TravelModeBicycling {
		t.Errorf("Mode = %v, want bicycling", api.gotRequest.Mode)
	}
}

func TestGetDirectionsErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  error
		wantErr error
	}{
		{"zero results", errors.New("maps: ZERO_RESULTS - "), directions.ErrNoRouteFound},
		{"quota exhausted", errors.New("maps: OVER_QUERY_LIMIT - quota"), directions.ErrRateLimitExceeded},
		{"invalid request", errors.New("maps: INVALID_REQUEST - bad origin"), directions.ErrInvalidCoordinates},
		{"network failure", errors.New("dial tcp: connection refused"), directions.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(&fakeAPI{err: tt.apiErr})

			_, err := client.GetDirections(context.Background(), directions.Request{
				Origin:      directions.Coordinate{Lat: 40.7, Lon: -74.0},
				Destination: directions.Coordinate{Lat: 40.8, Lon: -74.1},
				Profile:     directions.ProfileDriving,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapped %v", err, tt.wantErr)
			}

			var provErr *directions.Error
			if !errors.As(err, &provErr) {
				t.Fatalf("error is not a *directions.Error: %v", err)
			}
			if provErr.Provider != ProviderName {
				t.Errorf("Provider = %q, want %q", provErr.Provider, ProviderName)
			}
		})
	}
}

func TestTravelModeMapping(t *testing.T) {
	tests := []struct {
		profile directions.Profile
		want    maps.Mode
	}{
		{directions.ProfileDriving, maps.TravelModeDriving},
		{directions.ProfileWalking, maps.TravelModeWalking},
		{directions.ProfileCycling, maps.TravelModeBicycling},
	}

	for _, tt := range tests {
		if got := travelMode(tt.profile); got != tt.want {
			t.Errorf("travelMode(%q) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}

func TestUpgradeGeometryEmpty(t *testing.T) {
	if got := upgradeGeometry(""); got != "" {
		t.Errorf("upgradeGeometry(\"\") = %q, want empty", got)
	}
}
