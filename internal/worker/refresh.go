package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/selection"
)

// RefreshJob recomputes the distance label of every catalog location by
// routing from the catalog origin to the location and writing the formatted
// miles value back. Labels survive until the next run, so a failed location
// keeps its previous value.
type RefreshJob struct {
	config     RefreshConfig
	catalog    *catalog.Service
	directions selection.RouteFetcher
	logger     zerolog.Logger

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns         int64
	RefreshedLabels   int64
	FailedLocations   int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config     RefreshConfig
	Catalog    *catalog.Service
	Directions selection.RouteFetcher
	Logger     zerolog.Logger
}

// NewRefreshJob creates a new distance refresh job.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	return &RefreshJob{
		config:     cfg.Config.normalized(),
		catalog:    cfg.Catalog,
		directions: cfg.Directions,
		logger:     cfg.Logger,
		metrics:    &RefreshMetrics{},
	}
}

// RefreshResult contains the result of one refresh run.
type RefreshResult struct {
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalLocations int
	Refreshed      int
	Failed         int
	Errors         []RefreshError
}

// RefreshError records a failure for a single location.
type RefreshError struct {
	Index int
	Name  string
	Error string
}

// Run recomputes distance labels for all catalog locations.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	locations, err := j.catalog.List(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("listing catalog locations failed")
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		result.Errors = append(result.Errors, RefreshError{Index: -1, Error: err.Error()})
		return result
	}
	result.TotalLocations = len(locations)

	j.logger.Info().
		Int("locations", len(locations)).
		Int("concurrency", j.config.Concurrency).
		Str("profile", string(j.config.Profile)).
		Msg("starting distance refresh job")

	type indexed struct {
		index    int
		location catalog.Location
	}

	work := make(chan indexed, len(locations))
	results := make(chan locationResult, len(locations))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				select {
				case <-ctx.Done():
					return
				default:
					results <- j.refreshLocation(ctx, item.index, item.location)
				}
			}
		}()
	}

	for i, loc := range locations {
		work <- indexed{index: i, location: loc}
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	for lr := range results {
		if lr.err == nil {
			result.Refreshed++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Index: lr.index,
				Name:  lr.name,
				Error: lr.err.Error(),
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("refreshed", result.Refreshed).
		Int("failed", result.Failed).
		Msg("distance refresh job completed")

	return result
}

type locationResult struct {
	index int
	name  string
	err   error
}

func (j *RefreshJob) refreshLocation(ctx context.Context, index int, loc catalog.Location) locationResult {
	result := locationResult{index: index, name: loc.Name}

	reqCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	origin := j.catalog.Origin()
	resp, err := j.directions.GetDirections(reqCtx, directions.Request{
		Origin:      directions.Coordinate{Lat: origin.Lat, Lon: origin.Lon},
		Destination: directions.Coordinate{Lat: loc.Coordinate.Lat, Lon: loc.Coordinate.Lon},
		Profile:     j.config.Profile,
	})
	if err != nil {
		result.err = err
		return result
	}
	if len(resp.Routes) == 0 {
		result.err = directions.ErrNoRouteFound
		return result
	}

	label := selection.FormatMiles(resp.Routes[0].DistanceMeters)
	result.err = j.catalog.SetDistance(ctx, index, label)
	return result
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.RefreshedLabels += int64(result.Refreshed)
	j.metrics.FailedLocations += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		RefreshedLabels: j.metrics.RefreshedLabels,
		FailedLocations: j.metrics.FailedLocations,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"refreshed_labels":  m.RefreshedLabels,
		"failed_locations":  m.FailedLocations,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
