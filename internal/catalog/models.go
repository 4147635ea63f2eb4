// Package catalog provides the ordered store location catalog backing the
// marker layer and the card list.
package catalog

import (
	"errors"
)

// Repository errors.
var (
	// ErrLocationNotFound indicates the requested catalog index does not exist.
	ErrLocationNotFound = errors.New("location not found")
	// ErrCatalogLoad indicates the backing feature collection could not be loaded.
	ErrCatalogLoad = errors.New("failed to load location catalog")
)

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location holds one store's display data and coordinate. The coordinate is
// fixed at construction; only the distance label is mutated afterwards, and
// it is overwritten wholesale on each recomputation.
type Location struct {
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Hours      string     `json:"hours"`
	Phone      string     `json:"phone"`
	Coordinate Coordinate `json:"coordinate"`

	// Distance is the display label ("1.4" miles) from the device origin.
	// Empty until the first route computation completes.
	Distance string `json:"distance,omitempty"`
}

// Catalog is an ordered sequence of locations. Insertion order equals source
// feature order: card position i, marker i and feature i all refer to the
// same store. The device origin is carried out-of-band and never occupies an
// index.
type Catalog struct {
	Locations []Location
	Origin    Coordinate
}

// Size returns the number of catalog entries, excluding the origin.
func (c *Catalog) Size() int {
	return len(c.Locations)
}

// IndexOf returns the index of the location at the given coordinate, or -1.
// The origin never matches.
func (c *Catalog) IndexOf(coord Coordinate) int {
	for i := range c.Locations {
		if c.Locations[i].Coordinate == coord {
			return i
		}
	}
	return -1
}
