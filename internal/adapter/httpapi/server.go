// Package httpapi exposes the planning API plus health, readiness, and
// metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sar-mission-planner/internal/domain"
	"github.com/couchcryptid/sar-mission-planner/internal/planner"
)

// PlanHandler dispatches one planning request.
type PlanHandler interface {
	Handle(ctx context.Context, req planner.Request) (planner.Result, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the planning endpoint and operational routes.
type Server struct {
	httpServer *http.Server
	handler    PlanHandler
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/plan, /healthz, /readyz, and
// /metrics routes.
func NewServer(addr string, handler PlanHandler, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // collaborator calls bound request latency
			IdleTimeout:  60 * time.Second,
		},
		handler: handler,
		logger:  logger,
	}

	mux.HandleFunc("POST /v1/plan", s.handlePlan)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)

	var req planner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", "")
		return
	}

	result, err := s.handler.Handle(r.Context(), req)
	if err != nil {
		s.writePlanError(w, logger, req, err)
		return
	}

	logger.Info("planning request served", "action", req.Action, "incident_id", req.Incident.ID)
	writeJSON(w, http.StatusOK, result)
}

// writePlanError maps the error taxonomy onto HTTP statuses: validation and
// unsupported-action errors name the problem for the caller; invariant
// violations are internal defects and stay generic.
func (s *Server) writePlanError(w http.ResponseWriter, logger *slog.Logger, req planner.Request, err error) {
	var validationErr *domain.ValidationError
	var actionErr *domain.UnsupportedActionError

	switch {
	case errors.As(err, &actionErr):
		writeError(w, http.StatusBadRequest, actionErr.Error(), actionErr.Action)
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error(), validationErr.Field)
	case errors.Is(err, domain.ErrInvariantViolation):
		logger.Error("internal planning defect", "action", req.Action, "error", err)
		writeError(w, http.StatusInternalServerError, "internal planning failure", "")
	default:
		logger.Error("planning request failed", "action", req.Action, "error", err)
		writeError(w, http.StatusInternalServerError, "internal planning failure", "")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, errorBody{Error: msg, Field: field})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
