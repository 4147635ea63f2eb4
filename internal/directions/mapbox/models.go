package mapbox

// mapboxResponse is the Directions API v5 response envelope.
// https://docs.mapbox.com/api/navigation/directions/
type mapboxResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message,omitempty"`
	Routes  []mapboxRoute `json:"routes"`
}

// Response codes returned in the body alongside HTTP 200.
const (
	codeOK           = "Ok"
	codeNoRoute      = "NoRoute"
	codeNoSegment    = "NoSegment"
	codeInvalidInput = "InvalidInput"
)

type mapboxRoute struct {
	// Geometry is polyline-encoded at precision 6 (geometries=polyline6).
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}
