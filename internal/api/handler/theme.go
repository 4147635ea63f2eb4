package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storelocator/storelocator/internal/api/response"
	"github.com/storelocator/storelocator/internal/theme"
)

// ThemeHandler handles theme lookup endpoints. The theme table is fixed at
// build time, so responses are cacheable.
type ThemeHandler struct{}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// ListThemes handles GET /v1/themes - all theme configurations.
func (h *ThemeHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	ids := theme.IDs()
	themes := make([]theme.Configuration, len(ids))
	for i, id := range ids {
		themes[i] = theme.Resolve(id)
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"themes":  themes,
		"default": theme.DefaultID,
	})
}

// GetTheme handles GET /v1/themes/{id} - one theme configuration.
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	id := theme.ID(chi.URLParam(r, "id"))

	cfg := theme.Resolve(id)
	if cfg.ID != id {
		response.NotFound(w, r, "unknown theme")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, cfg)
}
