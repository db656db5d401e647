package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

// PredictRequest is the POST body of the predict endpoint. Empty corners
// are legal and produce the defined sentinel results.
type PredictRequest struct {
	RedFighter  string `json:"red_fighter" validate:"max=200"`
	BlueFighter string `json:"blue_fighter" validate:"max=200"`
}

// PredictBout scores a bout between the two fighters in the query string
// @Summary Predict Bout
// @Tags Predictions
// @Produce json
// @Param red query string false "Red corner fighter name"
// @Param blue query string false "Blue corner fighter name"
// @Success 200 {object} models.BoutPrediction
// @Router /predict [get]
func (h *Handler) PredictBout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.respondPrediction(w, r, q.Get("red"), q.Get("blue"))
}

// PredictBoutJSON scores a bout described by a JSON body
// @Summary Predict Bout (JSON)
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Bout to score"
// @Success 200 {object} models.BoutPrediction
// @Failure 400 {object} map[string]string
// @Router /predict [post]
func (h *Handler) PredictBoutJSON(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	h.respondPrediction(w, r, req.RedFighter, req.BlueFighter)
}

func (h *Handler) respondPrediction(w http.ResponseWriter, r *http.Request, red, blue string) {
	ctx := r.Context()

	if cached, ok := h.cachedPrediction(ctx, red, blue); ok {
		h.jsonResponse(w, http.StatusOK, cached)
		return
	}

	pred := h.prediction.Predict(ctx, red, blue)

	if pred.Scored {
		h.cachePrediction(ctx, red, blue, pred)
		h.recordPrediction(pred)
	}

	h.jsonResponse(w, http.StatusOK, pred)
}

// recordPrediction hands the scored bout to the worker pool. Losing an
// event under load is acceptable; the prediction response is not affected.
func (h *Handler) recordPrediction(pred *models.BoutPrediction) {
	if h.pool == nil {
		return
	}

	ok := h.pool.Enqueue(&models.PredictionEvent{
		ID:                uuid.New(),
		PredictedAt:       time.Now().UTC(),
		RedFighter:        pred.RedFighter,
		BlueFighter:       pred.BlueFighter,
		Winner:            pred.Winner,
		Confidence:        pred.Confidence,
		SupportingFactors: pred.SupportingFactors,
		OpposingFactors:   pred.OpposingFactors,
	})
	if !ok {
		h.logger.Warnw("Prediction event dropped", "red", pred.RedFighter, "blue", pred.BlueFighter)
	}
}

func predictionCacheKey(red, blue string) string {
	return "prediction:" + red + "|" + blue
}

func (h *Handler) cachedPrediction(ctx context.Context, red, blue string) (*models.BoutPrediction, bool) {
	if h.redis == nil {
		return nil, false
	}

	data, err := h.redis.Get(ctx, predictionCacheKey(red, blue)).Bytes()
	if err != nil {
		if err != redis.Nil {
			h.logger.Warnw("Prediction cache read failed", "error", err)
		}
		return nil, false
	}

	var pred models.BoutPrediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return nil, false
	}
	return &pred, true
}

func (h *Handler) cachePrediction(ctx context.Context, red, blue string, pred *models.BoutPrediction) {
	if h.redis == nil {
		return
	}

	data, err := json.Marshal(pred)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, predictionCacheKey(red, blue), data, h.cacheTTL).Err(); err != nil {
		h.logger.Warnw("Prediction cache write failed", "error", err)
	}
}
