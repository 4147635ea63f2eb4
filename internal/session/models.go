// Package session manages locator sessions: each session owns one selection
// state machine, its route coordinator, and a theme chosen at creation.
package session

import (
	"errors"
	"time"

	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/selection"
	"github.com/storelocator/storelocator/internal/theme"
	"github.com/storelocator/storelocator/pkg/polyline"
)

// Predefined errors for session operations.
var (
	// ErrSessionNotFound indicates the session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoSelection indicates the operation needs a selected location.
	ErrNoSelection = errors.New("no location selected")
)

// Session is one locator session. The controllers record what a map and a
// card list would render, so the session can be snapshotted over HTTP.
type Session struct {
	ID        string
	Theme     theme.Configuration
	CreatedAt time.Time

	State       *selection.State
	Coordinator *selection.Coordinator
	Map         *selection.RecordingMap
	Cards       *selection.RecordingCardList
}

// RoutePreview is the decoded route geometry plus its themed line color.
type RoutePreview struct {
	Coordinates []polyline.Coordinate `json:"coordinates"`
	LineColor   string                `json:"lineColor"`
}

// MarkerSnapshot is the render state of one catalog marker.
type MarkerSnapshot struct {
	Index      int                `json:"index"`
	Selected   bool               `json:"selected"`
	Coordinate catalog.Coordinate `json:"coordinate"`
}

// Snapshot is the full observable state of a session.
type Snapshot struct {
	SessionID     string              `json:"sessionId"`
	Theme         theme.Configuration `json:"theme"`
	SelectedIndex *int                `json:"selectedIndex,omitempty"`
	Markers       []MarkerSnapshot    `json:"markers"`
	Locations     []catalog.Location  `json:"locations"`
	RoutePreview  *RoutePreview       `json:"routePreview,omitempty"`
	CardScrollTo  *int                `json:"cardScrollTo,omitempty"`
	Notices       []string            `json:"notices"`
}

// NavigationHandOff is the payload handed to an external turn-by-turn
// navigation surface. This service does not implement guidance itself.
type NavigationHandOff struct {
	Origin       catalog.Coordinate `json:"origin"`
	Destination  catalog.Coordinate `json:"destination"`
	DistanceUnit string             `json:"distanceUnit"`
}

// DistanceUnitImperial is the unit preference handed to navigation.
const DistanceUnitImperial = "imperial"
