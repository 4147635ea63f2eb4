package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Required string properties on each point feature.
const (
	propName        = "name"
	propHours       = "hours"
	propDescription = "description"
	propPhone       = "phone"
)

// geoFeatureCollection mirrors the subset of GeoJSON the catalog consumes.
type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Type       string          `json:"type"`
	Geometry   *geoGeometry    `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

type geoGeometry struct {
	Type string `json:"type"`
	// Coordinates are [lon, lat] per the GeoJSON spec.
	Coordinates []float64 `json:"coordinates"`
}

type geoProperties struct {
	Name        *string `json:"name"`
	Hours       *string `json:"hours"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
}

// BuildFromFeatureCollection parses a GeoJSON feature collection into a
// Catalog. Only point features are considered. A feature missing a required
// string property is skipped with a warning rather than aborting the load,
// so one malformed entry cannot empty the whole catalog.
func BuildFromFeatureCollection(data []byte, origin Coordinate, logger zerolog.Logger) (*Catalog, error) {
	var fc geoFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	locations := make([]Location, 0, len(fc.Features))

	for i, f := range fc.Features {
		if f.Geometry == nil || f.Geometry.Type != "Point" {
			logger.Warn().
				Int("feature_index", i).
				Msg("skipping feature without point geometry")
			continue
		}
		if len(f.Geometry.Coordinates) < 2 {
			logger.Warn().
				Int("feature_index", i).
				Msg("skipping feature with malformed coordinates")
			continue
		}

		var props geoProperties
		if len(f.Properties) > 0 {
			if err := json.Unmarshal(f.Properties, &props); err != nil {
				logger.Warn().
					Err(err).
					Int("feature_index", i).
					Msg("skipping feature with unparseable properties")
				continue
			}
		}

		if missing := missingProperty(props); missing != "" {
			logger.Warn().
				Int("feature_index", i).
				Str("property", missing).
				Msg("skipping feature with missing required property")
			continue
		}

		locations = append(locations, Location{
			Name:    *props.Name,
			Address: *props.Description,
			Hours:   *props.Hours,
			Phone:   *props.Phone,
			Coordinate: Coordinate{
				Lat: f.Geometry.Coordinates[1],
				Lon: f.Geometry.Coordinates[0],
			},
		})
	}

	return &Catalog{
		Locations: locations,
		Origin:    origin,
	}, nil
}

func missingProperty(props geoProperties) string {
	switch {
	case props.Name == nil:
		return propName
	case props.Hours == nil:
		return propHours
	case props.Description == nil:
		return propDescription
	case props.Phone == nil:
		return propPhone
	}
	return ""
}
