package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ekoly/ufc-fight-prediction/internal/models"
)

func newTestHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}
	return New(cfg)
}

func TestListFighters(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		mockFunc    func(weightClass string) []string
		expected    []string
		expectClass string
	}{
		{
			name:     "All Fighters",
			query:    "",
			expected: []string{"Jon Jones", "Stipe Miocic"},
		},
		{
			name:  "Weight Class Filter",
			query: "?weight_class=Heavyweight",
			mockFunc: func(weightClass string) []string {
				if weightClass != "Heavyweight" {
					return nil
				}
				return []string{"Stipe Miocic"}
			},
			expected: []string{"Stipe Miocic"},
		},
		{
			name:  "Unknown Weight Class",
			query: "?weight_class=Nope",
			mockFunc: func(weightClass string) []string {
				return []string{}
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{
				Roster: &MockRosterService{AllFightersFunc: tt.mockFunc},
			})

			req := httptest.NewRequest("GET", "/api/v1/fighters"+tt.query, nil)
			w := httptest.NewRecorder()
			h.ListFighters(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %v, want 200", w.Code)
			}

			var got []string
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("fighters = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("fighters[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetWeightClasses(t *testing.T) {
	h := newTestHandler(Config{Roster: &MockRosterService{}})

	req := httptest.NewRequest("GET", "/api/v1/weight-classes", nil)
	w := httptest.NewRecorder()
	h.GetWeightClasses(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}

	var got []models.WeightClass
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Heavyweight" {
		t.Errorf("unexpected weight classes: %v", got)
	}
}

func TestGetFighterCard(t *testing.T) {
	h := newTestHandler(Config{Roster: &MockRosterService{}})

	r := h.Router(RouterConfig{})

	req := httptest.NewRequest("GET", "/api/v1/fighters/Jon%20Jones/card", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}

	var card models.FighterCard
	if err := json.NewDecoder(w.Body).Decode(&card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.Name != "Jon Jones" {
		t.Errorf("card name = %q, want %q", card.Name, "Jon Jones")
	}
	if card.Reach != "215.9 cms" {
		t.Errorf("card reach = %q", card.Reach)
	}
}

func TestPredictBout(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		mockFunc     func(ctx context.Context, red, blue string) *models.BoutPrediction
		expectWinner string
		expectQueued int
	}{
		{
			name:         "Scored Bout Is Queued",
			query:        "?red=Jon%20Jones&blue=Stipe%20Miocic",
			expectWinner: "Jon Jones",
			expectQueued: 1,
		},
		{
			name:  "Sentinel Is Not Queued",
			query: "?red=&blue=",
			mockFunc: func(ctx context.Context, red, blue string) *models.BoutPrediction {
				return &models.BoutPrediction{Winner: models.NoWinner}
			},
			expectWinner: models.NoWinner,
			expectQueued: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockEventQueue{}
			h := newTestHandler(Config{
				WorkerPool: queue,
				Prediction: &MockPredictionService{PredictFunc: tt.mockFunc},
			})

			req := httptest.NewRequest("GET", "/api/v1/predict"+tt.query, nil)
			w := httptest.NewRecorder()
			h.PredictBout(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %v, want 200", w.Code)
			}

			var pred models.BoutPrediction
			if err := json.NewDecoder(w.Body).Decode(&pred); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if pred.Winner != tt.expectWinner {
				t.Errorf("winner = %q, want %q", pred.Winner, tt.expectWinner)
			}
			if len(queue.Enqueued) != tt.expectQueued {
				t.Errorf("queued events = %d, want %d", len(queue.Enqueued), tt.expectQueued)
			}
		})
	}
}

func TestPredictBoutJSON(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Valid Body",
			body:           `{"red_fighter":"Jon Jones","blue_fighter":"Stipe Miocic"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid JSON",
			body:           `{"red_fighter":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Name Too Long",
			body:           `{"red_fighter":"` + strings.Repeat("a", 300) + `"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{
				Prediction: &MockPredictionService{},
			})

			req := httptest.NewRequest("POST", "/api/v1/predict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.PredictBoutJSON(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRecentPredictions(t *testing.T) {
	tests := []struct {
		name           string
		history        *MockHistoryService
		expectedStatus int
	}{
		{
			name: "Success",
			history: &MockHistoryService{
				RecentFunc: func(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
					return []models.PredictionRecord{{RedFighter: "Jon Jones"}}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Query Error",
			history: &MockHistoryService{
				RecentFunc: func(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
					return nil, errors.New("connection refused")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Not Configured",
			history:        nil,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			if tt.history != nil {
				cfg.History = tt.history
			}
			h := newTestHandler(cfg)

			req := httptest.NewRequest("GET", "/api/v1/predictions/recent", nil)
			w := httptest.NewRecorder()
			h.RecentPredictions(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestGetHeadToHead(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{
			name:           "Success",
			query:          "?red=Jon%20Jones&blue=Stipe%20Miocic",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Blue",
			query:          "?red=Jon%20Jones",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Both",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{History: &MockHistoryService{}})

			req := httptest.NewRequest("GET", "/api/v1/predictions/head-to-head"+tt.query, nil)
			w := httptest.NewRecorder()
			h.GetHeadToHead(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestTopFactors(t *testing.T) {
	h := newTestHandler(Config{
		Analytics: &MockAnalyticsService{
			TopFactorsFunc: func(ctx context.Context, limit int) ([]models.FactorCount, error) {
				return []models.FactorCount{{Factor: "Career wins", Cited: 12}}, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/v1/predictions/factors", nil)
	w := httptest.NewRecorder()
	h.TopFactors(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}

	var factors []models.FactorCount
	if err := json.NewDecoder(w.Body).Decode(&factors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(factors) != 1 || factors[0].Factor != "Career wins" {
		t.Errorf("unexpected factors: %v", factors)
	}
}

func TestTopFactors_NotConfigured(t *testing.T) {
	h := newTestHandler(Config{})

	req := httptest.NewRequest("GET", "/api/v1/predictions/factors", nil)
	w := httptest.NewRecorder()
	h.TopFactors(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %v, want 503", w.Code)
	}
}

func TestPopularMatchups_NotConfigured(t *testing.T) {
	h := newTestHandler(Config{})

	req := httptest.NewRequest("GET", "/api/v1/predictions/popular", nil)
	w := httptest.NewRecorder()
	h.PopularMatchups(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %v, want 503", w.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(Config{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReady_NoStoresConfigured(t *testing.T) {
	h := newTestHandler(Config{})

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	h.Ready(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", w.Code)
	}
}
