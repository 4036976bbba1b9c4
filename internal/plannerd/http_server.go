package plannerd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/guidebot/planner-core/internal/metrics"
	"github.com/guidebot/planner-core/pkg/logger"
	"github.com/guidebot/planner-core/pkg/utils"
)

// HTTPServer exposes plan runs over a JSON HTTP API. Payloads may also
// be submitted as YAML (Content-Type containing "yaml").
type HTTPServer struct {
	mux      *http.ServeMux
	store    *PlanStore
	Executor *PlanExecutor
}

func NewHTTPServer(store *PlanStore, executor *PlanExecutor) *HTTPServer {
	s := &HTTPServer{
		mux:      http.NewServeMux(),
		store:    store,
		Executor: executor,
	}

	metrics.RegisterDefault()
	s.handle("/healthz", s.handleHealthz)
	s.handle("/v1/plans", s.handlePlans)
	s.handle("/v1/plans/", s.handlePlanByID)
	s.mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE streaming working through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// handle registers a handler wrapped with request counting.
func (s *HTTPServer) handle(pattern string, fn http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)
		metrics.HTTPRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
	})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handlePlans handles /v1/plans
func (s *HTTPServer) handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreatePlan(w, r)
	case http.MethodGet:
		s.handleListPlans(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handlePlanByID handles /v1/plans/{id} and related endpoints
func (s *HTTPServer) handlePlanByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/plans/")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "plan ID is required")
		return
	}

	if strings.HasSuffix(path, ":start") {
		planID := strings.TrimSuffix(path, ":start")
		if r.Method == http.MethodPost {
			s.handleStartPlan(w, r, planID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.HasSuffix(path, ":stop") {
		planID := strings.TrimSuffix(path, ":stop")
		if r.Method == http.MethodPost {
			s.handleStopPlan(w, r, planID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.HasSuffix(path, "/itinerary") {
		planID := strings.TrimSuffix(path, "/itinerary")
		if r.Method == http.MethodGet {
			s.handleGetItinerary(w, r, planID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.HasSuffix(path, "/progress/stream") {
		planID := strings.TrimSuffix(path, "/progress/stream")
		if r.Method == http.MethodGet {
			s.handleProgressStream(w, r, planID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if r.Method == http.MethodGet {
		s.handleGetPlan(w, r, path)
	} else {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// decodeInput decodes a create-plan payload as JSON or YAML.
func decodeInput(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "yaml") {
		return yaml.NewDecoder(r.Body).Decode(dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleCreatePlan handles POST /v1/plans
func (s *HTTPServer) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string     `json:"plan_id,omitempty" yaml:"plan_id,omitempty"`
		Input  *PlanInput `json:"input" yaml:"input"`
	}

	if err := decodeInput(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Input == nil {
		s.writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	rec, err := s.store.Create(req.PlanID, req.Input)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			s.writeError(w, http.StatusConflict, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("plan created", "plan_id", rec.ID, "destination", rec.Input.Destination)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"plan": planToJSON(rec),
	})
}

// handleListPlans handles GET /v1/plans with pagination and filtering
func (s *HTTPServer) handleListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = utils.Min(parsed, 1000)
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	status := ParsePlanStatus(r.URL.Query().Get("status"))

	recs := s.store.List(limit, offset, status)
	plansJSON := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		plansJSON = append(plansJSON, planToJSON(rec))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"plans": plansJSON,
		"pagination": map[string]any{
			"limit":  limit,
			"offset": offset,
			"count":  len(recs),
		},
	})
}

// handleGetPlan handles GET /v1/plans/{id}
func (s *HTTPServer) handleGetPlan(w http.ResponseWriter, _ *http.Request, planID string) {
	rec, ok := s.store.Get(planID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"plan": planToJSON(rec),
	})
}

// handleStartPlan handles POST /v1/plans/{id}:start
func (s *HTTPServer) handleStartPlan(w http.ResponseWriter, _ *http.Request, planID string) {
	updated, err := s.Executor.Start(planID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrPlanTerminal):
			s.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrPlanIDMissing):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("plan started", "plan_id", planID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"plan": planToJSON(updated),
	})
}

// handleStopPlan handles POST /v1/plans/{id}:stop
func (s *HTTPServer) handleStopPlan(w http.ResponseWriter, _ *http.Request, planID string) {
	updated, err := s.Executor.Stop(planID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrPlanTerminal):
			s.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrPlanIDMissing):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("plan stop requested", "plan_id", planID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"plan": planToJSON(updated),
	})
}

// handleGetItinerary handles GET /v1/plans/{id}/itinerary
func (s *HTTPServer) handleGetItinerary(w http.ResponseWriter, _ *http.Request, planID string) {
	rec, ok := s.store.Get(planID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	if rec.Snapshot == nil {
		s.writeError(w, http.StatusPreconditionFailed, "itinerary not available")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"plan_id":   rec.ID,
		"score":     rec.Result.Score,
		"itinerary": rec.Snapshot,
	})
}

// handleProgressStream handles GET /v1/plans/{id}/progress/stream (SSE)
func (s *HTTPServer) handleProgressStream(w http.ResponseWriter, r *http.Request, planID string) {
	rec, ok := s.store.Get(planID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	previousStatus := rec.Status
	s.sendSSEEvent(w, "status_change", map[string]any{
		"status": string(rec.Status),
	})

	interval := 500 * time.Millisecond
	if intervalStr := r.URL.Query().Get("interval_ms"); intervalStr != "" {
		if intervalMs, err := strconv.ParseInt(intervalStr, 10, 64); err == nil && intervalMs > 0 {
			interval = time.Duration(intervalMs) * time.Millisecond
		}
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastProgress PlanProgress
	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rec, ok := s.store.Get(planID)
			if !ok {
				s.sendSSEEvent(w, "error", map[string]any{"error": "plan not found"})
				return
			}

			if rec.Status != previousStatus {
				s.sendSSEEvent(w, "status_change", map[string]any{
					"status": string(rec.Status),
				})
				previousStatus = rec.Status
			}

			if rec.Progress != nil && *rec.Progress != lastProgress {
				lastProgress = *rec.Progress
				s.sendSSEEvent(w, "progress", map[string]any{
					"iterations":  rec.Progress.Iterations,
					"temperature": rec.Progress.Temperature,
					"best_score":  rec.Progress.BestScore,
				})
			}

			if rec.Status.Terminal() {
				s.sendSSEEvent(w, "complete", map[string]any{
					"status": string(rec.Status),
				})
				return
			}

			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

// sendSSEEvent sends a Server-Sent Event. Errors are logged, not
// returned; SSE streams are best-effort.
func (s *HTTPServer) sendSSEEvent(w http.ResponseWriter, eventType string, data map[string]any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to marshal SSE event data", "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, jsonData); err != nil {
		logger.Error("failed to write SSE event", "error", err)
	}
}

// Helper functions

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}
