package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storelocator/storelocator/internal/api/models"
	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/featureflags"
	"github.com/storelocator/storelocator/internal/selection"
)

// RouteHandler handles direct route preview requests.
type RouteHandler struct {
	directions *directions.Service
	flags      *featureflags.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(directionsSvc *directions.Service, flags *featureflags.Service) *RouteHandler {
	return &RouteHandler{
		directions: directionsSvc,
		flags:      flags,
	}
}

// PreviewRoute handles POST /v1/routes:preview - compute a route between two
// points without a session.
func (h *RouteHandler) PreviewRoute(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && h.flags.IsRoutePreviewDisabled(r.Context()) {
		response.ServiceUnavailable(w, r, "route previews are temporarily disabled")
		return
	}

	var req models.RoutePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return
	}

	profile := directions.Profile(req.Profile)
	if profile == "" {
		profile = directions.ProfileWalking
	}

	resp, err := h.directions.GetDirections(r.Context(), directions.Request{
		Origin:       directions.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon},
		Destination:  directions.Coordinate{Lat: req.Destination.Lat, Lon: req.Destination.Lon},
		Profile:      profile,
		FullOverview: true,
	})
	if err != nil {
		h.writeDirectionsError(w, r, err)
		return
	}
	if len(resp.Routes) == 0 {
		response.NoRouteFound(w, r, "no route between the given points")
		return
	}

	route := resp.Routes[0]
	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, models.RoutePreviewResponse{
		Provider:         resp.Provider,
		Profile:          models.Profile(profile),
		GeometryPolyline: route.GeometryPolyline,
		DistanceMeters:   route.DistanceMeters,
		DurationSeconds:  route.DurationSeconds,
		DistanceLabel:    selection.FormatMiles(route.DistanceMeters),
	})
}

// writeDirectionsError maps directions errors to problem responses.
func (h *RouteHandler) writeDirectionsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, directions.ErrNoRouteFound):
		response.NoRouteFound(w, r, "no route between the given points")
	case errors.Is(err, directions.ErrInvalidCoordinates):
		response.BadRequest(w, r, "invalid coordinates", nil)
	case errors.Is(err, directions.ErrRateLimitExceeded):
		response.TooManyRequests(w, r, "directions provider rate limit exceeded")
	case errors.Is(err, directions.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "directions provider unavailable")
	default:
		response.InternalError(w, r, "route computation failed")
	}
}
