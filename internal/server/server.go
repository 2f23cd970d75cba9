// Package server exposes the estimation engine over a JSON HTTP API. It is
// the thin caller shim the product's web tier talks to; all domain logic
// stays in the estimation package.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/autorev/laptime-engine/internal/config"
	"github.com/autorev/laptime-engine/internal/estimation"
	"github.com/autorev/laptime-engine/internal/models"
)

// Server serves the estimation API.
type Server struct {
	engine  *estimation.Engine
	logger  *logrus.Logger
	limiter *rate.Limiter
	timeout time.Duration
	server  *http.Server
}

// NewServer creates an API server from configuration.
func NewServer(cfg *config.ServerConfig, engine *estimation.Engine, logger *logrus.Logger) *Server {
	s := &Server{
		engine:  engine,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/estimate", s.withMiddleware(s.handleEstimate))
	mux.HandleFunc("GET /api/v1/tracks/{slug}/baseline", s.withMiddleware(s.handleBaseline))
	mux.HandleFunc("GET /api/v1/tracks/{slug}/stats", s.withMiddleware(s.handleTrackStats))
	mux.HandleFunc("GET /api/v1/tracks/{slug}/similar", s.withMiddleware(s.handleSimilarCars))

	s.server = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: s.timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the route handler, exposed for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the API server in the background and shuts it down when the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("Estimation API server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Estimation API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Estimation API server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies rate limiting and the request-level timeout. The
// engine itself carries no timeout logic; the deadline lives on the request
// context as the engine's contract expects.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()

		next(w, r.WithContext(ctx))
	}
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.EstimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TrackSlug == "" || req.StockHP <= 0 {
		writeError(w, http.StatusBadRequest, "track_slug and stock_hp are required")
		return
	}

	result := s.engine.EstimateLapTime(r.Context(), req)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	baseline := s.engine.TrackBaseline(r.Context(), slug)
	writeJSON(w, http.StatusOK, baseline)
}

func (s *Server) handleTrackStats(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	summary := s.engine.TrackStatsSummary(r.Context(), slug)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSimilarCars(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	hp, err := strconv.Atoi(r.URL.Query().Get("hp"))
	if err != nil || hp <= 0 {
		writeError(w, http.StatusBadRequest, "hp query parameter is required")
		return
	}
	weight, _ := strconv.Atoi(r.URL.Query().Get("weight"))

	cars := s.engine.FindSimilarCars(r.Context(), slug, hp, weight)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"track_slug": slug,
		"cars":       cars,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
