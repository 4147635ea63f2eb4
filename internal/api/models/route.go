package models

// RoutePreviewRequest is the request body for computing a route preview
// between two arbitrary points, outside any session.
type RoutePreviewRequest struct {
	Origin      *Point  `json:"origin" validate:"required"`
	Destination *Point  `json:"destination" validate:"required"`
	Profile     Profile `json:"profile,omitempty"`
}

// Validate validates the route preview request.
func (r *RoutePreviewRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Origin == nil {
		errors = append(errors, FieldError{
			Field:   "origin",
			Message: "origin is required",
			Code:    "REQUIRED",
		})
	} else {
		errors = append(errors, validatePoint("origin", *r.Origin)...)
	}

	if r.Destination == nil {
		errors = append(errors, FieldError{
			Field:   "destination",
			Message: "destination is required",
			Code:    "REQUIRED",
		})
	} else {
		errors = append(errors, validatePoint("destination", *r.Destination)...)
	}

	if errs := validateProfile(r.Profile); errs != nil {
		errors = append(errors, errs...)
	}

	return errors
}

func validatePoint(field string, p Point) []FieldError {
	var errors []FieldError
	if p.Lat < -90 || p.Lat > 90 {
		errors = append(errors, FieldError{
			Field:   field + ".lat",
			Message: "latitude must be between -90 and 90",
			Code:    "OUT_OF_RANGE",
		})
	}
	if p.Lon < -180 || p.Lon > 180 {
		errors = append(errors, FieldError{
			Field:   field + ".lon",
			Message: "longitude must be between -180 and 180",
			Code:    "OUT_OF_RANGE",
		})
	}
	return errors
}

// RoutePreviewResponse is the computed route preview.
type RoutePreviewResponse struct {
	Provider string  `json:"provider"`
	Profile  Profile `json:"profile"`

	// GeometryPolyline is the route geometry encoded at precision 6.
	GeometryPolyline string `json:"geometryPolyline"`

	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`

	// DistanceLabel is the rounded display distance in miles.
	DistanceLabel string `json:"distanceLabel"`
}
