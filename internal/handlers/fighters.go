package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// ListFighters returns all fighter names, or the roster of one weight class
// @Summary List Fighters
// @Tags Fighters
// @Produce json
// @Param weight_class query string false "Weight class internal value"
// @Success 200 {array} string
// @Router /fighters [get]
func (h *Handler) ListFighters(w http.ResponseWriter, r *http.Request) {
	weightClass := r.URL.Query().Get("weight_class")
	h.jsonResponse(w, http.StatusOK, h.roster.AllFighters(weightClass))
}

// GetWeightClasses returns the fixed weight class enumeration
// @Summary Get Weight Classes
// @Tags Fighters
// @Produce json
// @Success 200 {array} models.WeightClass
// @Router /weight-classes [get]
func (h *Handler) GetWeightClasses(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.roster.WeightClasses())
}

// GetFighterCard returns the stat summary for one fighter
// @Summary Get Fighter Card
// @Tags Fighters
// @Produce json
// @Param name path string true "Fighter name"
// @Success 200 {object} models.FighterCard
// @Router /fighters/{name}/card [get]
func (h *Handler) GetFighterCard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Fighter name is required")
		return
	}

	// Unknown fighters answer with placeholder values, not 404: absence of
	// reference data is not an error in this API.
	h.jsonResponse(w, http.StatusOK, h.roster.Card(name))
}
