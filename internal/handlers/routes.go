package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterConfig carries the HTTP-level knobs the router needs.
type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Router assembles the full route tree.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimitPerSecond > 0 {
		r.Use(rateLimit(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst))
	}

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/fighters", h.ListFighters)
		r.Get("/fighters/{name}/card", h.GetFighterCard)
		r.Get("/weight-classes", h.GetWeightClasses)

		r.Get("/predict", h.PredictBout)
		r.Post("/predict", h.PredictBoutJSON)

		r.Route("/predictions", func(r chi.Router) {
			r.Get("/recent", h.RecentPredictions)
			r.Get("/head-to-head", h.GetHeadToHead)
			r.Get("/popular", h.PopularMatchups)
			r.Get("/factors", h.TopFactors)
		})
	})

	return r
}

// rateLimit applies a process-wide token bucket. Per-client fairness is
// left to the edge proxy.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"Too many requests"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
