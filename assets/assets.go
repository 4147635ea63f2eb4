// Package assets bundles static data shipped with the binaries.
package assets

import _ "embed"

// LocationsGeoJSON is the bundled store catalog, a GeoJSON feature
// collection of point features with name, hours, description, and phone
// properties.
//
//go:embed locations.geojson
var LocationsGeoJSON []byte
