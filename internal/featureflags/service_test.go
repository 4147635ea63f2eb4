package featureflags_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/featureflags"
)

func TestService_GetFlag(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	flag := service.GetFlag(ctx, featureflags.FlagMultiProfileRouting)
	if flag == nil {
		t.Fatal("expected flag to be returned")
	}
	if flag.Key != featureflags.FlagMultiProfileRouting {
		t.Errorf("expected key %q, got %q", featureflags.FlagMultiProfileRouting, flag.Key)
	}
	if flag.BoolValue(false) != true {
		t.Error("expected routing_multi_profile to be true by default")
	}
}

func TestService_SetFlag(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	err := service.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableRoutePreview,
		Value: true,
	})
	if err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	flag := service.GetFlag(ctx, featureflags.FlagDisableRoutePreview)
	if flag == nil {
		t.Fatal("expected flag to be returned")
	}
	if flag.BoolValue(false) != true {
		t.Error("expected disable_route_preview to be true after update")
	}
}

func TestService_SetFlags(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	err := service.SetFlags(ctx, []*featureflags.Flag{
		{Key: featureflags.FlagMultiProfileRouting, Value: false},
		{Key: featureflags.FlagDefaultProfile, Value: "driving"},
	})
	if err != nil {
		t.Fatalf("failed to set flags: %v", err)
	}

	if service.IsMultiProfileRoutingEnabled(ctx) {
		t.Error("expected multi-profile routing to be disabled")
	}
	if got := service.DefaultProfile(ctx); got != "driving" {
		t.Errorf("expected default profile driving, got %q", got)
	}
}

func TestService_GetAllFlags(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()
	flags := service.GetAllFlags(ctx)

	expectedFlags := []string{
		featureflags.FlagMultiProfileRouting,
		featureflags.FlagDefaultProfile,
		featureflags.FlagFeatureRestyling,
		featureflags.FlagDisableRoutePreview,
	}

	for _, key := range expectedFlags {
		if _, ok := flags[key]; !ok {
			t.Errorf("expected flag %q to be present", key)
		}
	}
}

func TestService_InvalidateCache(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Hour, // Long TTL to test cache
	})

	ctx := context.Background()

	// Get a flag to populate cache
	_ = service.GetFlag(ctx, featureflags.FlagDisableRoutePreview)

	// Directly update the repository (bypassing service)
	_ = repo.SetFlag(ctx, &featureflags.Flag{
		Key:   featureflags.FlagDisableRoutePreview,
		Value: true,
	})

	// Invalidate cache
	service.InvalidateCache()

	// Now should get fresh value from repository
	flag := service.GetFlag(ctx, featureflags.FlagDisableRoutePreview)
	if flag.BoolValue(false) != true {
		t.Error("expected updated value after cache invalidation")
	}
}

func TestService_ConvenienceMethods(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   1 * time.Minute,
	})

	ctx := context.Background()

	if !service.IsMultiProfileRoutingEnabled(ctx) {
		t.Error("expected multi-profile routing to be enabled by default")
	}
	if got := service.DefaultProfile(ctx); got != "walking" {
		t.Errorf("expected default profile walking, got %q", got)
	}
	if !service.IsFeatureRestylingEnabled(ctx) {
		t.Error("expected feature restyling to be enabled by default")
	}
	if service.IsRoutePreviewDisabled(ctx) {
		t.Error("expected route preview to not be disabled by default")
	}
}

func TestFlag_ValueHelpers(t *testing.T) {
	tests := []struct {
		name          string
		value         interface{}
		wantBool      bool
		wantString    string
		wantInt       int
		defaultBool   bool
		defaultString string
		defaultInt    int
	}{
		{
			name:          "boolean true",
			value:         true,
			wantBool:      true,
			wantString:    "default",
			wantInt:       42,
			defaultBool:   false,
			defaultString: "default",
			defaultInt:    42,
		},
		{
			name:          "boolean false",
			value:         false,
			wantBool:      false,
			defaultBool:   true,
			defaultString: "default",
			defaultInt:    42,
			wantString:    "default",
			wantInt:       42,
		},
		{
			name:          "string value",
			value:         "cycling",
			wantBool:      false,
			wantString:    "cycling",
			wantInt:       42,
			defaultBool:   false,
			defaultString: "default",
			defaultInt:    42,
		},
		{
			name:          "int value (as float64 from JSON)",
			value:         float64(100),
			wantBool:      true, // non-zero
			wantString:    "default",
			wantInt:       100,
			defaultBool:   false,
			defaultString: "default",
			defaultInt:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := &featureflags.Flag{
				Key:       "test",
				Value:     tt.value,
				UpdatedAt: time.Now(),
			}

			if got := flag.BoolValue(tt.defaultBool); got != tt.wantBool {
				t.Errorf("BoolValue() = %v, want %v", got, tt.wantBool)
			}
			if got := flag.StringValue(tt.defaultString); got != tt.wantString {
				t.Errorf("StringValue() = %v, want %v", got, tt.wantString)
			}
			if got := flag.IntValue(tt.defaultInt); got != tt.wantInt {
				t.Errorf("IntValue() = %v, want %v", got, tt.wantInt)
			}
		})
	}
}

func TestFlag_NilFlag(t *testing.T) {
	var flag *featureflags.Flag

	if flag.BoolValue(true) != true {
		t.Error("expected default value for nil flag")
	}
	if flag.StringValue("default") != "default" {
		t.Error("expected default value for nil flag")
	}
	if flag.IntValue(42) != 42 {
		t.Error("expected default value for nil flag")
	}
}

func TestInMemoryRepository_GetFlag_NotFound(t *testing.T) {
	repo := featureflags.NewInMemoryRepositoryWithFlags(make(map[string]*featureflags.Flag))
	ctx := context.Background()

	_, err := repo.GetFlag(ctx, "nonexistent")
	if !errors.Is(err, featureflags.ErrFlagNotFound) {
		t.Errorf("expected ErrFlagNotFound, got %v", err)
	}
}

func TestService_FallbackToDefaults(t *testing.T) {
	// Create service with empty repository but defaults
	repo := featureflags.NewInMemoryRepositoryWithFlags(make(map[string]*featureflags.Flag))
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository:   repo,
		Logger:       zerolog.Nop(),
		CacheTTL:     1 * time.Minute,
		DefaultFlags: featureflags.DefaultFlags(),
	})

	ctx := context.Background()

	// Should fallback to default value
	flag := service.GetFlag(ctx, featureflags.FlagFeatureRestyling)
	if flag == nil {
		t.Fatal("expected flag to be returned from defaults")
	}
	if flag.BoolValue(false) != true {
		t.Error("expected map_feature_restyling to be true from defaults")
	}
}
