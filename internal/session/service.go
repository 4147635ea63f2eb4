package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/featureflags"
	"github.com/storelocator/storelocator/internal/selection"
	"github.com/storelocator/storelocator/internal/theme"
	"github.com/storelocator/storelocator/pkg/polyline"
)

// ServiceConfig holds dependencies for the session service.
type ServiceConfig struct {
	// Catalog is the shared location catalog.
	Catalog *catalog.Service

	// Directions fetches routes for session coordinators.
	Directions selection.RouteFetcher

	// Connectivity is the optional precheck hook handed to coordinators.
	Connectivity selection.ConnectivityChecker

	// Repository stores live sessions. Defaults to in-memory.
	Repository Repository

	// Flags is the optional capability flag service. When nil, all
	// capabilities default to enabled.
	Flags *featureflags.Service

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service creates and operates locator sessions.
type Service struct {
	catalog      *catalog.Service
	directions   selection.RouteFetcher
	connectivity selection.ConnectivityChecker
	repo         Repository
	flags        *featureflags.Service
	logger       zerolog.Logger
}

// NewService creates a session service.
func NewService(cfg ServiceConfig) *Service {
	repo := cfg.Repository
	if repo == nil {
		repo = NewInMemoryRepository()
	}
	return &Service{
		catalog:      cfg.Catalog,
		directions:   cfg.Directions,
		connectivity: cfg.Connectivity,
		repo:         repo,
		flags:        cfg.Flags,
		logger:       cfg.Logger,
	}
}

// resolveProfile applies the capability flags to a requested travel profile.
// Empty or disallowed overrides collapse to the configured default.
func (s *Service) resolveProfile(ctx context.Context, requested directions.Profile) directions.Profile {
	fallback := directions.ProfileWalking
	if s.flags != nil {
		if p := directions.Profile(s.flags.DefaultProfile(ctx)); p.Valid() {
			fallback = p
		}
		if !s.flags.IsMultiProfileRoutingEnabled(ctx) {
			return fallback
		}
	}
	if requested == "" {
		return fallback
	}
	return requested
}

// Create starts a new session themed by themeID. Unknown or empty theme IDs
// fall back to Blue.
func (s *Service) Create(themeID theme.ID) *Session {
	cfg := theme.Resolve(themeID)

	mapCtrl := selection.NewRecordingMap()
	cards := selection.NewRecordingCardList()

	coordinator := selection.NewCoordinator(selection.CoordinatorConfig{
		Fetcher:      s.directions,
		Catalog:      s.catalog,
		Map:          mapCtrl,
		Cards:        cards,
		Connectivity: s.connectivity,
		Logger:       s.logger,
	})

	state := selection.NewState(selection.StateConfig{
		Catalog:     s.catalog,
		Map:         mapCtrl,
		Cards:       cards,
		Coordinator: coordinator,
		Logger:      s.logger,
	})

	sess := &Session{
		ID:          uuid.NewString(),
		Theme:       cfg,
		CreatedAt:   time.Now(),
		State:       state,
		Coordinator: coordinator,
		Map:         mapCtrl,
		Cards:       cards,
	}
	s.repo.Save(sess)
	s.seedDistances(coordinator)

	s.logger.Info().
		Str("session_id", sess.ID).
		Str("theme", string(cfg.ID)).
		Msg("session created")

	return sess
}

// seedDistances requests a distance label for every catalog entry that does
// not have one yet, so the card list carries distances as soon as the map
// loads. Fetches run on the coordinator's background goroutines.
func (s *Service) seedDistances(coordinator *selection.Coordinator) {
	ctx := context.Background()

	locations, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing catalog for distance seeding")
		return
	}

	origin := s.catalog.Origin()
	profile := s.resolveProfile(ctx, "")
	for i, loc := range locations {
		if loc.Distance != "" {
			continue
		}
		if err := coordinator.RequestRoute(ctx, origin, loc.Coordinate, profile, selection.PurposeComputeDistance(i)); err != nil {
			s.logger.Warn().Err(err).Int("index", i).Msg("distance seeding stopped")
			return
		}
	}
}

// Get returns a session by id.
func (s *Service) Get(id string) (*Session, error) {
	sess, ok := s.repo.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete ends a session, waiting out its in-flight route requests.
func (s *Service) Delete(id string) error {
	sess, ok := s.repo.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	sess.Coordinator.Wait()
	s.repo.Delete(id)
	s.logger.Info().Str("session_id", id).Msg("session deleted")
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	return s.repo.Count()
}

// MarkerClick forwards a resolved map click into a session's selection state.
func (s *Service) MarkerClick(ctx context.Context, id string, hit selection.MarkerHit, profile directions.Profile) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.State.OnMarkerClick(ctx, hit, s.resolveProfile(ctx, profile))
}

// CardClick forwards a card click into a session's selection state.
func (s *Service) CardClick(ctx context.Context, id string, index int, profile directions.Profile) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	return sess.State.OnCardClick(ctx, index, s.resolveProfile(ctx, profile))
}

// ClearSelection deselects whatever the session has selected.
func (s *Service) ClearSelection(id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	sess.State.Clear()
	return nil
}

// Snapshot captures the full observable state of a session.
func (s *Service) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	locations, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	snap := &Snapshot{
		SessionID: sess.ID,
		Theme:     sess.Theme,
		Locations: locations,
		Markers:   make([]MarkerSnapshot, len(locations)),
		Notices:   sess.Cards.Notices(),
	}

	selected := sess.State.Selected()
	if selected != selection.NoSelection {
		snap.SelectedIndex = &selected
	}

	restyling := s.flags == nil || s.flags.IsFeatureRestylingEnabled(ctx)
	for i, loc := range locations {
		snap.Markers[i] = MarkerSnapshot{
			Index:      i,
			Selected:   restyling && sess.Map.MarkerSelected(i),
			Coordinate: loc.Coordinate,
		}
	}

	previewDisabled := s.flags != nil && s.flags.IsRoutePreviewDisabled(ctx)
	if geometry := sess.Map.Route(); geometry != "" && !previewDisabled {
		snap.RoutePreview = &RoutePreview{
			Coordinates: polyline.Decode(geometry, polyline.Precision6),
			LineColor:   sess.Theme.RouteLineColor,
		}
	}

	if pos, ok := sess.Cards.ScrollPosition(); ok {
		snap.CardScrollTo = &pos
	}

	return snap, nil
}

// NavigationHandOff builds the payload for the external turn-by-turn
// surface: mock origin, selected destination, imperial display units.
func (s *Service) NavigationHandOff(ctx context.Context, id string) (*NavigationHandOff, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	selected := sess.State.Selected()
	if selected == selection.NoSelection {
		return nil, ErrNoSelection
	}

	dest, err := s.catalog.Get(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	return &NavigationHandOff{
		Origin:       s.catalog.Origin(),
		Destination:  dest.Coordinate,
		DistanceUnit: DistanceUnitImperial,
	}, nil
}
