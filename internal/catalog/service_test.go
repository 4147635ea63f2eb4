package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/catalog"
)

func testLocations() []catalog.Location {
	return []catalog.Location{
		{
			Name:       "Westside Market",
			Address:    "77 7th Ave",
			Hours:      "8am - 11pm",
			Phone:      "(212) 807-7771",
			Coordinate: catalog.Coordinate{Lat: 40.740178, Lon: -74.000474},
		},
		{
			Name:       "Union Square Greenmarket",
			Address:    "E 17th St",
			Hours:      "8am - 6pm",
			Phone:      "(212) 788-7476",
			Coordinate: catalog.Coordinate{Lat: 40.736532, Lon: -73.990252},
		},
	}
}

func newTestService() *catalog.Service {
	repo := catalog.NewInMemoryRepository(testLocations())
	return catalog.NewService(catalog.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
	})
}

func TestService_List(t *testing.T) {
	service := newTestService()

	locations, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations[0].Name != "Westside Market" {
		t.Errorf("catalog order not preserved: %q", locations[0].Name)
	}
}

func TestService_Get_OutOfRange(t *testing.T) {
	service := newTestService()

	_, err := service.Get(context.Background(), 5)
	if !errors.Is(err, catalog.ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}

	_, err = service.Get(context.Background(), -1)
	if !errors.Is(err, catalog.ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound for negative index, got %v", err)
	}
}

func TestService_SetDistance(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if err := service.SetDistance(ctx, 1, "1.4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := service.Get(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Distance != "1.4" {
		t.Errorf("expected distance %q, got %q", "1.4", loc.Distance)
	}

	// Other entries are untouched.
	other, _ := service.Get(ctx, 0)
	if other.Distance != "" {
		t.Errorf("expected empty distance on index 0, got %q", other.Distance)
	}

	// Recomputation overwrites the prior label.
	if err := service.SetDistance(ctx, 1, "2.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, _ = service.Get(ctx, 1)
	if loc.Distance != "2.1" {
		t.Errorf("expected overwritten distance %q, got %q", "2.1", loc.Distance)
	}
}

func TestService_SetDistance_OutOfRange(t *testing.T) {
	service := newTestService()

	err := service.SetDistance(context.Background(), 9, "1.0")
	if !errors.Is(err, catalog.ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestService_Reload(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	data := `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {"name": "New Store", "hours": "9-5", "description": "Addr", "phone": "555"},
				"geometry": {"type": "Point", "coordinates": [-74.0, 40.7]}
			}
		]
	}`

	count, err := service.Reload(ctx, []byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 location after reload, got %d", count)
	}

	locations, _ := service.List(ctx)
	if len(locations) != 1 || locations[0].Name != "New Store" {
		t.Errorf("reload did not replace catalog: %+v", locations)
	}
}

func TestService_Reload_MalformedLeavesCatalog(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Reload(ctx, []byte("not geojson"))
	if err == nil {
		t.Fatal("expected error")
	}

	// A failed load must not leave a partially-updated catalog.
	locations, _ := service.List(ctx)
	if len(locations) != 2 {
		t.Errorf("expected catalog unchanged after failed reload, got %d entries", len(locations))
	}
}

func TestService_DefaultOrigin(t *testing.T) {
	service := newTestService()

	origin := service.Origin()
	if origin.Lat != 40.713469 || origin.Lon != -74.006735 {
		t.Errorf("unexpected default origin: %+v", origin)
	}
}
