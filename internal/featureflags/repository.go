package featureflags

import (
	"context"
	"errors"
)

// ErrFlagNotFound is returned when a capability flag is not found.
var ErrFlagNotFound = errors.New("capability flag not found")

// Repository defines the interface for capability flag storage.
type Repository interface {
	// GetFlag retrieves a single capability flag by key.
	GetFlag(ctx context.Context, key string) (*Flag, error)

	// GetAllFlags retrieves all capability flags.
	GetAllFlags(ctx context.Context) (map[string]*Flag, error)

	// SetFlag creates or updates a capability flag.
	SetFlag(ctx context.Context, flag *Flag) error

	// SetFlags creates or updates multiple capability flags atomically.
	SetFlags(ctx context.Context, flags []*Flag) error

	// DeleteFlag removes a capability flag by key.
	DeleteFlag(ctx context.Context, key string) error
}
