package directions

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockProvider is a mock directions provider for testing.
type mockProvider struct {
	name      string
	response  *Response
	err       error
	callCount atomic.Int32
}

func (m *mockProvider) GetDirections(_ context.Context, _ Request) (*Response, error) {
	m.callCount.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) SupportedProfiles() []Profile {
	return []Profile{ProfileDriving, ProfileWalking, ProfileCycling}
}

func singleRouteResponse() *Response {
	return &Response{
		Routes: []Route{
			{
				GeometryPolyline: "svavjAxlsclC}tBkjB",
				DistanceMeters:   1609.34,
				DurationSeconds:  420,
			},
		},
		Provider:  "test-provider",
		FetchedAt: time.Now(),
	}
}

func TestService_GetDirections_CacheMiss(t *testing.T) {
	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{Provider: provider})

	resp, err := service.GetDirections(context.Background(), Request{
		Origin:      Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: Coordinate{Lat: 40.718217, Lon: -73.998284},
		Profile:     ProfileWalking,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.callCount.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.callCount.Load())
	}
	if len(resp.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(resp.Routes))
	}
	if resp.Routes[0].DistanceMeters != 1609.34 {
		t.Errorf("expected distance 1609.34, got %v", resp.Routes[0].DistanceMeters)
	}
}

func TestService_GetDirections_CacheHit(t *testing.T) {
	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{Provider: provider, CacheTTL: 5 * time.Minute})

	req := Request{
		Origin:      Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: Coordinate{Lat: 40.718217, Lon: -73.998284},
		Profile:     ProfileWalking,
	}

	for i := 0; i < 3; i++ {
		if _, err := service.GetDirections(context.Background(), req); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}

	if provider.callCount.Load() != 1 {
		t.Errorf("expected 1 provider call for repeated request, got %d", provider.callCount.Load())
	}
}

func TestService_GetDirections_OverviewNotShared(t *testing.T) {
	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{Provider: provider, CacheTTL: 5 * time.Minute})

	base := Request{
		Origin:      Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: Coordinate{Lat: 40.718217, Lon: -73.998284},
		Profile:     ProfileWalking,
	}

	full := base
	full.FullOverview = true

	if _, err := service.GetDirections(context.Background(), base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.GetDirections(context.Background(), full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A simplified-overview response must not satisfy a full-overview request.
	if provider.callCount.Load() != 2 {
		t.Errorf("expected 2 provider calls, got %d", provider.callCount.Load())
	}
}

func TestService_GetDirections_StaleIfError(t *testing.T) {
	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{
		Provider: provider,
		CacheTTL: 1 * time.Millisecond,
	})

	req := Request{
		Origin:      Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: Coordinate{Lat: 40.718217, Lon: -73.998284},
		Profile:     ProfileDriving,
	}

	if _, err := service.GetDirections(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	provider.err = &Error{
		Provider: "test-provider",
		Code:     "SERVER_503",
		Message:  "unavailable",
		Err:      ErrProviderUnavailable,
	}

	resp, err := service.GetDirections(context.Background(), req)
	if err != nil {
		t.Fatalf("expected stale response on provider error, got %v", err)
	}
	if len(resp.Routes) != 1 {
		t.Errorf("expected stale route to survive, got %d routes", len(resp.Routes))
	}
}

func TestService_GetDirections_ErrorWithoutCache(t *testing.T) {
	provider := &mockProvider{
		name: "test-provider",
		err: &Error{
			Provider: "test-provider",
			Code:     "SERVER_503",
			Message:  "unavailable",
			Err:      ErrProviderUnavailable,
		},
	}
	service := NewService(ServiceConfig{Provider: provider})

	_, err := service.GetDirections(context.Background(), Request{
		Origin:      Coordinate{Lat: 40.7, Lon: -74.0},
		Destination: Coordinate{Lat: 40.8, Lon: -74.1},
		Profile:     ProfileDriving,
	})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestService_GetDirections_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "latitude out of range",
			req: Request{
				Origin:      Coordinate{Lat: 91, Lon: -74},
				Destination: Coordinate{Lat: 40.8, Lon: -74.1},
				Profile:     ProfileDriving,
			},
		},
		{
			name: "longitude out of range",
			req: Request{
				Origin:      Coordinate{Lat: 40.7, Lon: -74},
				Destination: Coordinate{Lat: 40.8, Lon: -181},
				Profile:     ProfileDriving,
			},
		},
		{
			name: "unknown profile",
			req: Request{
				Origin:      Coordinate{Lat: 40.7, Lon: -74},
				Destination: Coordinate{Lat: 40.8, Lon: -74.1},
				Profile:     Profile("flying"),
			},
		},
	}

	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{Provider: provider})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GetDirections(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}

	if provider.callCount.Load() != 0 {
		t.Errorf("invalid requests must not reach the provider, got %d calls", provider.callCount.Load())
	}
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &mockProvider{name: "test-provider", response: singleRouteResponse()}
	service := NewService(ServiceConfig{Provider: provider, CacheTTL: 5 * time.Minute})

	req := Request{
		Origin:      Coordinate{Lat: 40.713469, Lon: -74.006735},
		Destination: Coordinate{Lat: 40.718217, Lon: -73.998284},
		Profile:     ProfileCycling,
	}

	if _, err := service.GetDirections(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	service.InvalidateCache()

	if _, err := service.GetDirections(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.callCount.Load() != 2 {
		t.Errorf("expected 2 provider calls after invalidation, got %d", provider.callCount.Load())
	}
}
