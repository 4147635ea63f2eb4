// Package selection keeps map marker selection, the card list, and the
// drawn route preview mutually consistent. At most one catalog entry is
// selected at a time; the mock origin is never a selectable entry.
package selection

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
)

// NoSelection is the index reported while nothing is selected.
const NoSelection = -1

// HitKind classifies what a map click resolved to.
type HitKind int

const (
	// HitNone means no feature was under the click point.
	HitNone HitKind = iota
	// HitOrigin means the mock origin marker was clicked.
	HitOrigin
	// HitLocation means a catalog entry's marker was clicked.
	HitLocation
)

// MarkerHit is a resolved map click.
type MarkerHit struct {
	Kind  HitKind
	Index int
}

// StateConfig holds dependencies for a State.
type StateConfig struct {
	Catalog     *catalog.Service
	Map         MapController
	Cards       CardListController
	Coordinator *Coordinator
	Logger      zerolog.Logger
}

// State is the selection state machine. All transitions run under a single
// mutex so concurrent callers serialize; route responses are applied by the
// Coordinator under its own lock and token guard.
type State struct {
	catalog     *catalog.Service
	mapCtrl     MapController
	cards       CardListController
	coordinator *Coordinator
	logger      zerolog.Logger

	mu       sync.Mutex
	selected int
}

// NewState creates a State with nothing selected.
func NewState(cfg StateConfig) *State {
	return &State{
		catalog:     cfg.Catalog,
		mapCtrl:     cfg.Map,
		cards:       cfg.Cards,
		coordinator: cfg.Coordinator,
		logger:      cfg.Logger,
		selected:    NoSelection,
	}
}

// Selected returns the selected catalog index, or NoSelection.
func (s *State) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select makes index the single selected entry: the previous selection is
// restyled unselected, the card list scrolls to index, the camera moves to
// the entry, and a route preview fetch is triggered from the mock origin.
// Re-selecting the already-selected index re-triggers the route fetch (the
// travel profile may have changed) without any styling churn.
func (s *State) Select(ctx context.Context, index int, profile directions.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(ctx, index, profile)
}

// Toggle deselects index when it is already selected, clearing the drawn
// route preview; otherwise it behaves as Select.
func (s *State) Toggle(ctx context.Context, index int, profile directions.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == index {
		s.clearLocked()
		return nil
	}
	return s.selectLocked(ctx, index, profile)
}

// Clear deselects whatever is selected and clears the route preview.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// OnMarkerClick resolves a map hit. Clicks on empty space or on the mock
// origin are no-ops; they never clear an existing real selection.
func (s *State) OnMarkerClick(ctx context.Context, hit MarkerHit, profile directions.Profile) error {
	switch hit.Kind {
	case HitNone:
		return nil
	case HitOrigin:
		s.logger.Debug().Msg("origin marker clicked, ignoring")
		return nil
	}
	return s.Toggle(ctx, hit.Index, profile)
}

// OnCardClick handles a card click with toggling semantics.
func (s *State) OnCardClick(ctx context.Context, index int, profile directions.Profile) error {
	return s.Toggle(ctx, index, profile)
}

func (s *State) selectLocked(ctx context.Context, index int, profile directions.Profile) error {
	location, err := s.catalog.Get(ctx, index)
	if err != nil {
		return fmt.Errorf("selecting location %d: %w", index, err)
	}

	if s.selected == index {
		return s.requestPreviewLocked(ctx, location.Coordinate, profile)
	}

	if s.selected != NoSelection {
		s.mapCtrl.SetMarkerSelected(s.selected, false)
	}
	s.selected = index
	s.mapCtrl.SetMarkerSelected(index, true)
	s.cards.ScrollTo(index)
	s.mapCtrl.MoveCamera(location.Coordinate)

	return s.requestPreviewLocked(ctx, location.Coordinate, profile)
}

func (s *State) requestPreviewLocked(ctx context.Context, destination catalog.Coordinate, profile directions.Profile) error {
	err := s.coordinator.RequestRoute(ctx, s.catalog.Origin(), destination, profile, PurposeDrawPolyline())
	if err != nil {
		s.logger.Warn().Err(err).Msg("route preview request not sent")
	}
	// Precheck failures leave the selection itself intact.
	return nil
}

func (s *State) clearLocked() {
	if s.selected == NoSelection {
		return
	}
	s.mapCtrl.SetMarkerSelected(s.selected, false)
	s.selected = NoSelection
	s.coordinator.ClearDrawnRoute()
}
