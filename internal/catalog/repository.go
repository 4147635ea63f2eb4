package catalog

import "context"

// Repository defines the interface for catalog persistence. Entries are
// addressed by catalog index because index position is the correlation
// contract between cards, markers and features.
type Repository interface {
	// List retrieves all locations in catalog order.
	List(ctx context.Context) ([]Location, error)

	// Get retrieves the location at the given index.
	// Returns ErrLocationNotFound for out-of-range indices.
	Get(ctx context.Context, index int) (*Location, error)

	// Count returns the number of catalog entries.
	Count(ctx context.Context) (int, error)

	// SetDistance updates the distance label for the location at index.
	SetDistance(ctx context.Context, index int, label string) error

	// Replace swaps the whole catalog for a freshly built one.
	Replace(ctx context.Context, locations []Location) error
}
