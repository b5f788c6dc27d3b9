package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/projection"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/internal/session"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	sessions       *session.Service
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the savings API.
func NewHandler(logger *zap.Logger, sessions *session.Service, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, sessions: sessions, maxRequestSize: maxRequestSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": http.StatusText(http.StatusNotFound)})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": http.StatusText(http.StatusMethodNotAllowed)})
	})

	r.Route("/api", func(r chi.Router) {
		// Stateless calculation of any subset of panels
		r.Post("/calculate", h.handleCalculate)

		r.Get("/categories", h.handleCategories)
		r.Get("/version", h.handleVersion)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.handleCreateSession)
			r.Get("/", h.handleListSessions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetSession)
				r.Delete("/", h.handleDeleteSession)
				r.Get("/total", h.handleSessionTotal)
				r.Put("/panels/{category}", h.handleApplyPanel)
			})
		})
	})

	return r
}

type calculateRequest struct {
	Name   string                     `json:"name"`
	Common config.Common              `json:"common"`
	Panels map[string]json.RawMessage `json:"panels"`
}

type calculateResponse struct {
	Name     string                    `json:"name,omitempty"`
	Ledger   map[string]float64        `json:"ledger"`
	Entries  []savings.Entry           `json:"entries"`
	Shares   []savings.Share           `json:"shares"`
	Results  map[string]savings.Result `json:"results"`
	Skipped  map[string][]string       `json:"skipped,omitempty"`
	Notes    []string                  `json:"notes,omitempty"`
	Total    float64                   `json:"total"`
	Duration string                    `json:"duration"`
}

type sessionResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Ledger    map[string]float64        `json:"ledger"`
	Results   map[string]savings.Result `json:"results"`
	Total     float64                   `json:"total"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

type panelResponse struct {
	Category      string         `json:"category"`
	Skipped       bool           `json:"skipped"`
	MissingFields []string       `json:"missingFields,omitempty"`
	Result        savings.Result `json:"result,omitempty"`
	Total         float64        `json:"total"`
}

type categoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	var req calculateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	scenario := config.Scenario{Name: req.Name, Active: true}
	seen := make(map[savings.Category]string, len(req.Panels))
	for key, raw := range req.Panels {
		category, err := savings.ParseCategory(key)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if previous, ok := seen[category]; ok {
			h.respondError(w, http.StatusBadRequest,
				fmt.Sprintf("panels %q and %q both name category %s", previous, key, category), op)
			return
		}
		seen[category] = key
		in, err := savings.DecodeInput(category, raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		scenario.SetPanel(in)
	}

	result, err := projection.Project(h.logger, req.Name, scenario.Inputs(req.Common))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute savings: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := calculateResponse{
		Name:     result.Name,
		Ledger:   result.Ledger.Map(),
		Entries:  result.Ledger.Entries(),
		Shares:   result.Ledger.Shares(),
		Results:  keyResults(result.Results),
		Notes:    result.Notes,
		Total:    result.Total(),
		Duration: elapsed.String(),
	}
	if len(result.Skipped) > 0 {
		response.Skipped = make(map[string][]string, len(result.Skipped))
		for category, fields := range result.Skipped {
			response.Skipped[category.String()] = fields
		}
	}

	h.logger.Info("savings calculated",
		zap.String("op", op),
		zap.Int("panels", len(req.Panels)),
		zap.Float64("total", response.Total),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]categoryResponse, 0, len(savings.Categories()))
	for _, category := range savings.Categories() {
		categories = append(categories, categoryResponse{Key: category.String(), Label: category.Label()})
	}
	h.writeJSON(w, http.StatusOK, categories)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateSession"

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	}

	created, err := h.sessions.Create(r.Context(), req.Name)
	if err != nil {
		h.respondSessionError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, toSessionResponse(created))
}

func (h *handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.sessions.List(r.Context())
	if err != nil {
		h.respondSessionError(w, err, "server.handleListSessions")
		return
	}

	response := make([]sessionResponse, 0, len(list))
	for _, s := range list {
		response = append(response, toSessionResponse(s))
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err, "server.handleGetSession")
		return
	}
	h.writeJSON(w, http.StatusOK, toSessionResponse(s))
}

func (h *handler) handleSessionTotal(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondSessionError(w, err, "server.handleSessionTotal")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]float64{"total": s.Total()})
}

func (h *handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondSessionError(w, err, "server.handleDeleteSession")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleApplyPanel(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleApplyPanel"

	category, err := savings.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}
	in, err := savings.DecodeInput(category, body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	outcome, err := h.sessions.Apply(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.respondSessionError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, panelResponse{
		Category:      outcome.Category.String(),
		Skipped:       outcome.Skipped,
		MissingFields: outcome.MissingFields,
		Result:        outcome.Result,
		Total:         outcome.Total,
	})
}

// readBody reads the request body up to the configured limit. On failure the
// error response has already been written.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	return body, true
}

func toSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Ledger:    s.Ledger.Map(),
		Results:   keyResults(s.Results),
		Total:     s.Total(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func keyResults(results map[savings.Category]savings.Result) map[string]savings.Result {
	keyed := make(map[string]savings.Result, len(results))
	for category, result := range results {
		keyed[category.String()] = result
	}
	return keyed
}

func (h *handler) respondSessionError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, session.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Warn("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
