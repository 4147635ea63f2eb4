package models

// CreateSessionRequest is the request body for opening a locator session.
type CreateSessionRequest struct {
	// Theme selects the render theme. Unknown or empty values fall back to
	// the default theme rather than failing the request.
	Theme string `json:"theme,omitempty"`
}

// SessionCreated is the response after a session is opened.
type SessionCreated struct {
	SessionID string    `json:"sessionId"`
	Theme     string    `json:"theme"`
	CreatedAt Timestamp `json:"createdAt"`
}

// MarkerKind identifies what a map tap hit.
type MarkerKind string

const (
	MarkerKindNone     MarkerKind = "none"
	MarkerKindOrigin   MarkerKind = "origin"
	MarkerKindLocation MarkerKind = "location"
)

// MarkerClickRequest is the request body for a map tap.
type MarkerClickRequest struct {
	Kind    MarkerKind `json:"kind"`
	Index   int        `json:"index"`
	Profile Profile    `json:"profile,omitempty"`
}

// Validate validates the marker click request.
func (r *MarkerClickRequest) Validate() []FieldError {
	var errors []FieldError

	switch r.Kind {
	case MarkerKindNone, MarkerKindOrigin, MarkerKindLocation:
	default:
		errors = append(errors, FieldError{
			Field:   "kind",
			Message: "kind must be one of none, origin, location",
			Code:    "INVALID_ENUM",
		})
	}

	if r.Kind == MarkerKindLocation && r.Index < 0 {
		errors = append(errors, FieldError{
			Field:   "index",
			Message: "index must be non-negative for location hits",
			Code:    "OUT_OF_RANGE",
		})
	}

	if errs := validateProfile(r.Profile); errs != nil {
		errors = append(errors, errs...)
	}

	return errors
}

// CardClickRequest is the request body for a card list tap.
type CardClickRequest struct {
	Index   int     `json:"index"`
	Profile Profile `json:"profile,omitempty"`
}

// Validate validates the card click request.
func (r *CardClickRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Index < 0 {
		errors = append(errors, FieldError{
			Field:   "index",
			Message: "index must be non-negative",
			Code:    "OUT_OF_RANGE",
		})
	}

	if errs := validateProfile(r.Profile); errs != nil {
		errors = append(errors, errs...)
	}

	return errors
}

// validateProfile checks an optional travel profile. Empty means the
// server-side default.
func validateProfile(p Profile) []FieldError {
	switch p {
	case "", ProfileWalking, ProfileCycling, ProfileDriving:
		return nil
	}
	return []FieldError{{
		Field:   "profile",
		Message: "profile must be one of walking, cycling, driving",
		Code:    "INVALID_ENUM",
	}}
}
