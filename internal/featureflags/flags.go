// Package featureflags provides runtime capability flags. The selection flow
// is a single implementation parameterized by these flags rather than a set
// of per-variant forks.
package featureflags

import (
	"encoding/json"
	"time"
)

// Well-known capability flag keys.
const (
	// FlagMultiProfileRouting allows callers to override the travel profile
	// per request. When disabled, every route request uses the default.
	FlagMultiProfileRouting = "routing_multi_profile"

	// FlagDefaultProfile is the travel profile used when the caller supplies
	// none, or when multi-profile routing is disabled.
	FlagDefaultProfile = "routing_default_profile"

	// FlagFeatureRestyling enables per-marker restyling on selection. When
	// disabled, snapshots report selection only through the card list.
	FlagFeatureRestyling = "map_feature_restyling"

	// FlagDisableRoutePreview suppresses route preview drawing. Distance
	// labels are still computed. Used to shed load when the directions
	// provider is degraded.
	FlagDisableRoutePreview = "disable_route_preview"
)

// Flag represents a capability flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of capability flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update capability flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil, not found, or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// StringValue returns the flag value as a string.
// Returns the default value if the flag is nil, not found, or not a string.
func (f *Flag) StringValue(defaultValue string) string {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case string:
		return v
	default:
		return defaultValue
	}
}

// IntValue returns the flag value as an integer.
// Returns the default value if the flag is nil, not found, or not a number.
func (f *Flag) IntValue(defaultValue int) int {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		// JSON unmarshals numbers as float64
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

// JSONValue unmarshals the flag value into the target struct.
// Returns an error if unmarshaling fails.
func (f *Flag) JSONValue(target interface{}) error {
	if f == nil {
		return nil
	}
	data, err := json.Marshal(f.Value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// DefaultFlags returns the default capability flags for the application.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagMultiProfileRouting: {
			Key:       FlagMultiProfileRouting,
			Value:     true,
			UpdatedAt: now,
		},
		FlagDefaultProfile: {
			Key:       FlagDefaultProfile,
			Value:     "walking",
			UpdatedAt: now,
		},
		FlagFeatureRestyling: {
			Key:       FlagFeatureRestyling,
			Value:     true,
			UpdatedAt: now,
		},
		FlagDisableRoutePreview: {
			Key:       FlagDisableRoutePreview,
			Value:     false,
			UpdatedAt: now,
		},
	}
}
