package handlers

import (
	"net/http"
	"strconv"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
	"github.com/ekoly/ufc-fight-prediction/internal/worker"
)

// RecentPredictions returns the latest stored predictions
// @Summary Recent Predictions
// @Tags Predictions
// @Produce json
// @Param limit query int false "Maximum rows to return"
// @Success 200 {array} models.PredictionRecord
// @Failure 503 {object} map[string]string
// @Router /predictions/recent [get]
func (h *Handler) RecentPredictions(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Prediction history is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to load recent predictions", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load recent predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, records)
}

// GetHeadToHead tallies stored predictions for one fighter pair
// @Summary Head To Head
// @Tags Predictions
// @Produce json
// @Param red query string true "Red corner fighter name"
// @Param blue query string true "Blue corner fighter name"
// @Success 200 {object} models.HeadToHead
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /predictions/head-to-head [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Prediction history is not configured")
		return
	}

	q := r.URL.Query()
	red, blue := q.Get("red"), q.Get("blue")
	if red == "" || blue == "" {
		h.errorResponse(w, http.StatusBadRequest, "Both red and blue fighter names are required")
		return
	}

	h2h, err := h.history.HeadToHead(r.Context(), red, blue)
	if err != nil {
		h.logger.Errorw("Failed to load head to head", "red", red, "blue", blue, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load head to head record")
		return
	}

	h.jsonResponse(w, http.StatusOK, h2h)
}

// PopularMatchups returns the most requested fighter pairs
// @Summary Popular Matchups
// @Tags Predictions
// @Produce json
// @Param limit query int false "Maximum matchups to return"
// @Success 200 {array} models.MatchupCount
// @Failure 503 {object} map[string]string
// @Router /predictions/popular [get]
func (h *Handler) PopularMatchups(w http.ResponseWriter, r *http.Request) {
	if h.redis == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Matchup counters are not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := h.redis.ZRevRangeWithScores(r.Context(), worker.MatchupLeaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		h.logger.Errorw("Failed to load popular matchups", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load popular matchups")
		return
	}

	matchups := make([]models.MatchupCount, 0, len(entries))
	for _, entry := range entries {
		name, ok := entry.Member.(string)
		if !ok {
			continue
		}
		matchups = append(matchups, models.MatchupCount{
			Matchup:  name,
			Requests: entry.Score,
		})
	}

	h.jsonResponse(w, http.StatusOK, matchups)
}

// TopFactors returns the most frequently cited supporting factors
// @Summary Top Factors
// @Tags Predictions
// @Produce json
// @Param limit query int false "Maximum factors to return"
// @Success 200 {array} models.FactorCount
// @Failure 503 {object} map[string]string
// @Router /predictions/factors [get]
func (h *Handler) TopFactors(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Prediction analytics is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	factors, err := h.analytics.TopFactors(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to load top factors", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load top factors")
		return
	}

	h.jsonResponse(w, http.StatusOK, factors)
}
