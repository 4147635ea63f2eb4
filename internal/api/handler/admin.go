package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/api/middleware"
	"github.com/storelocator/storelocator/internal/api/models"
	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/featureflags"
)

// maxReloadBody caps the accepted catalog payload at 4 MiB.
const maxReloadBody = 4 << 20

// AdminHandler handles admin endpoints. All routes require a bearer token.
type AdminHandler struct {
	catalog *catalog.Service
	flags   *featureflags.Service
	logger  zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalogSvc *catalog.Service, flags *featureflags.Service, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalogSvc,
		flags:   flags,
		logger:  logger,
	}
}

// ReloadCatalog handles POST /v1/admin/catalog:reload - replace the location
// catalog from a GeoJSON feature collection in the request body.
func (h *AdminHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxReloadBody))
	if err != nil {
		response.BadRequest(w, r, "request body too large or unreadable", nil)
		return
	}

	count, err := h.catalog.Reload(r.Context(), body)
	if err != nil {
		if errors.Is(err, catalog.ErrCatalogLoad) {
			response.BadRequest(w, r, "invalid GeoJSON feature collection", nil)
			return
		}
		response.InternalError(w, r, "catalog reload failed")
		return
	}

	h.logger.Info().
		Str("admin_id", middleware.GetAdminID(r.Context())).
		Int("locations", count).
		Msg("catalog reloaded")

	response.JSON(w, r, http.StatusOK, models.CatalogReloaded{
		Locations:  count,
		ReloadedAt: models.Timestamp(time.Now()),
	})
}

// ListFlags handles GET /v1/admin/flags - list all capability flags.
func (h *AdminHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	flags := h.flags.GetAllFlags(r.Context())

	list := featureflags.FlagList{Items: make([]featureflags.Flag, 0, len(flags))}
	for _, f := range flags {
		list.Items = append(list.Items, *f)
	}
	sort.Slice(list.Items, func(i, j int) bool {
		return list.Items[i].Key < list.Items[j].Key
	})

	response.JSON(w, r, http.StatusOK, list)
}

// UpsertFlags handles PUT /v1/admin/flags - update capability flags.
func (h *AdminHandler) UpsertFlags(w http.ResponseWriter, r *http.Request) {
	var req featureflags.FlagUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if len(req.Updates) == 0 {
		response.BadRequest(w, r, "updates must not be empty", []models.FieldError{
			{Field: "updates", Message: "at least one update is required", Code: "REQUIRED"},
		})
		return
	}

	flags := make([]*featureflags.Flag, len(req.Updates))
	for i, u := range req.Updates {
		if u.Key == "" {
			response.BadRequest(w, r, "flag key must not be empty", []models.FieldError{
				{Field: "updates", Message: "every update needs a key", Code: "REQUIRED"},
			})
			return
		}
		flags[i] = &featureflags.Flag{Key: u.Key, Value: u.Value}
	}

	if err := h.flags.SetFlags(r.Context(), flags); err != nil {
		response.InternalError(w, r, "failed to update capability flags")
		return
	}

	h.logger.Info().
		Str("admin_id", middleware.GetAdminID(r.Context())).
		Int("updates", len(flags)).
		Str("reason", req.Reason).
		Msg("capability flags updated")

	response.NoContent(w, r)
}

// InvalidateFlagCache handles POST /v1/admin/flags:invalidate.
func (h *AdminHandler) InvalidateFlagCache(w http.ResponseWriter, r *http.Request) {
	h.flags.InvalidateCache()
	response.NoContent(w, r)
}
