package selection

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
)

// Sentinel errors for route coordination.
var (
	// ErrNoConnectivity indicates the connectivity precheck failed; no
	// request was sent.
	ErrNoConnectivity = errors.New("no network connectivity")
)

const metersPerMile = 1609.344

// ConnectivityChecker reports whether the network is reachable. A nil
// checker is treated as always online.
type ConnectivityChecker interface {
	Online(ctx context.Context) bool
}

// RouteFetcher retrieves route candidates. *directions.Service satisfies it.
type RouteFetcher interface {
	GetDirections(ctx context.Context, req directions.Request) (*directions.Response, error)
}

// purposeKind discriminates what a route response is for.
type purposeKind int

const (
	purposeDraw purposeKind = iota
	purposeDistance
)

// Purpose states what a requested route will be used for.
type Purpose struct {
	kind  purposeKind
	index int
}

// PurposeDrawPolyline requests the route geometry for drawing as the active
// preview.
func PurposeDrawPolyline() Purpose {
	return Purpose{kind: purposeDraw}
}

// PurposeComputeDistance requests the route length for the distance label on
// catalog entry index.
func PurposeComputeDistance(index int) Purpose {
	return Purpose{kind: purposeDistance, index: index}
}

// CoordinatorConfig holds dependencies for a Coordinator.
type CoordinatorConfig struct {
	Fetcher      RouteFetcher
	Catalog      *catalog.Service
	Map          MapController
	Cards        CardListController
	Connectivity ConnectivityChecker
	Logger       zerolog.Logger
}

// Coordinator issues directions requests and routes each response to its
// purpose: drawing the route preview or attaching a distance label to a
// catalog entry.
//
// Every target (the single preview slot, each catalog index) carries a
// latest-request token. A response is applied only while its token is still
// current, so overlapping requests resolve deterministically instead of
// last-write-wins.
type Coordinator struct {
	fetcher      RouteFetcher
	catalog      *catalog.Service
	mapCtrl      MapController
	cards        CardListController
	connectivity ConnectivityChecker
	logger       zerolog.Logger

	mu             sync.Mutex
	drawToken      uint64
	distanceTokens map[int]uint64

	inflight sync.WaitGroup
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	return &Coordinator{
		fetcher:        cfg.Fetcher,
		catalog:        cfg.Catalog,
		mapCtrl:        cfg.Map,
		cards:          cfg.Cards,
		connectivity:   cfg.Connectivity,
		logger:         cfg.Logger,
		distanceTokens: make(map[int]uint64),
	}
}

// RequestRoute issues a directions request from origin to destination and
// applies route candidate 0 according to purpose. The fetch itself runs
// asynchronously; the returned error covers only local prechecks.
func (c *Coordinator) RequestRoute(ctx context.Context, origin, destination catalog.Coordinate, profile directions.Profile, purpose Purpose) error {
	if c.connectivity != nil && !c.connectivity.Online(ctx) {
		c.logger.Warn().Msg("route request skipped: no connectivity")
		c.cards.Notify("No internet connection")
		return ErrNoConnectivity
	}

	token := c.issueToken(purpose)

	req := directions.Request{
		Origin:       directions.Coordinate{Lat: origin.Lat, Lon: origin.Lon},
		Destination:  directions.Coordinate{Lat: destination.Lat, Lon: destination.Lon},
		Profile:      profile,
		FullOverview: purpose.kind == purposeDraw,
	}

	// The fetch outlives the caller: an HTTP handler returns (and its request
	// context is canceled) before the response arrives, so the goroutine must
	// not inherit the caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		resp, err := c.fetcher.GetDirections(fetchCtx, req)
		c.apply(fetchCtx, purpose, token, resp, err)
	}()

	return nil
}

// ClearDrawnRoute removes the route preview and invalidates any in-flight
// draw request so a late response cannot resurrect it.
func (c *Coordinator) ClearDrawnRoute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawToken++
	c.mapCtrl.ClearRoute()
}

// Wait blocks until all in-flight route requests have been applied or
// discarded. Used by tests and on shutdown.
func (c *Coordinator) Wait() {
	c.inflight.Wait()
}

func (c *Coordinator) issueToken(purpose Purpose) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if purpose.kind == purposeDraw {
		c.drawToken++
		return c.drawToken
	}
	c.distanceTokens[purpose.index]++
	return c.distanceTokens[purpose.index]
}

func (c *Coordinator) currentTokenLocked(purpose Purpose) uint64 {
	if purpose.kind == purposeDraw {
		return c.drawToken
	}
	return c.distanceTokens[purpose.index]
}

// apply routes a completed response to its purpose, holding the lock so
// completions are serialized with each other and with ClearDrawnRoute.
func (c *Coordinator) apply(ctx context.Context, purpose Purpose, token uint64, resp *directions.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.currentTokenLocked(purpose) {
		c.logger.Debug().Uint64("token", token).Msg("discarding superseded route response")
		return
	}

	if err != nil {
		c.logger.Error().Err(err).Msg("route request failed")
		c.cards.Notify("Couldn't retrieve a route right now")
		return
	}

	// Zero candidates or a missing body is recoverable: log and leave all
	// state untouched.
	if resp == nil || len(resp.Routes) == 0 {
		c.logger.Warn().Msg("route response contained no routes")
		return
	}

	route := resp.Routes[0]

	switch purpose.kind {
	case purposeDraw:
		c.mapCtrl.DrawRoute(route.GeometryPolyline)
	case purposeDistance:
		label := FormatMiles(route.DistanceMeters)
		if err := c.catalog.SetDistance(ctx, purpose.index, label); err != nil {
			c.logger.Error().Err(err).Int("index", purpose.index).Msg("failed to store distance label")
			return
		}
		c.cards.SetDistance(purpose.index, label)
	}
}

// FormatMiles converts meters to miles and formats with at most one decimal
// place, dropping a trailing zero: 1609.34 m renders as "1", 2414 m as "1.5".
func FormatMiles(meters float64) string {
	miles := meters / metersPerMile
	rounded := math.Round(miles*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
