package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storelocator/storelocator/internal/api/models"
	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/catalog"
)

// CatalogHandler handles location catalog endpoints.
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogSvc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc}
}

// ListLocations handles GET /v1/locations - the full ordered catalog.
func (h *CatalogHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.catalog.List(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load location catalog")
		return
	}

	origin := h.catalog.Origin()
	list := models.LocationList{
		Origin:    models.Point{Lat: origin.Lat, Lon: origin.Lon},
		Locations: make([]models.LocationEntry, len(locations)),
	}
	for i, loc := range locations {
		list.Locations[i] = locationEntry(i, loc)
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, list)
}

// GetLocation handles GET /v1/locations/{index} - one catalog entry.
func (h *CatalogHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, r, "index must be an integer", []models.FieldError{
			{Field: "index", Message: "must be an integer", Code: "INVALID_FORMAT"},
		})
		return
	}

	loc, err := h.catalog.Get(r.Context(), index)
	if err != nil {
		if errors.Is(err, catalog.ErrLocationNotFound) {
			response.NotFound(w, r, "location not found")
			return
		}
		response.InternalError(w, r, "failed to load location")
		return
	}

	response.JSON(w, r, http.StatusOK, locationEntry(index, *loc))
}

func locationEntry(index int, loc catalog.Location) models.LocationEntry {
	return models.LocationEntry{
		Index:    index,
		Name:     loc.Name,
		Address:  loc.Address,
		Hours:    loc.Hours,
		Phone:    loc.Phone,
		Point:    models.Point{Lat: loc.Coordinate.Lat, Lon: loc.Coordinate.Lon},
		Distance: loc.Distance,
	}
}
