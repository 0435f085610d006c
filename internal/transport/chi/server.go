// Package chi exposes the index engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assetdex/internal/domain"
	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
	"github.com/kailas-cloud/assetdex/internal/domain/search"
	"github.com/kailas-cloud/assetdex/internal/metrics"
	batchuc "github.com/kailas-cloud/assetdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/assetdex/internal/usecase/health"
)

// Engine is the index service consumed by the HTTP layer.
type Engine interface {
	IndexAsset(ctx context.Context, a *asset.Asset) error
	UpdateAIResults(ctx context.Context, assetID uuid.UUID, upd *domdoc.AIUpdate) error
	RemoveAsset(ctx context.Context, assetID uuid.UUID) error
	SearchText(ctx context.Context, query string, limit int) ([]search.Result, error)
	SearchVisual(ctx context.Context, emb []float32, limit int) ([]search.Result, error)
	FindSimilar(ctx context.Context, assetID uuid.UUID, kind embedding.Kind, limit int) ([]search.Result, error)
	SearchHybrid(ctx context.Context, query string, emb []float32, limit int) ([]search.Result, error)
	Stats(ctx context.Context) search.Stats
	Clear(ctx context.Context) error
	Reload(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the index engine.
type Server struct {
	engine        Engine
	batch         *batchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(engine Engine, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		engine: engine,
		batch:  batchuc.New(engine),
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeAssetNotFound),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeVectorDimMismatch),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusBadRequest, codeIndexNotFound),
		sentinelHandler(domain.ErrSerialization, http.StatusInternalServerError, codeSerialization),
	}
	return s
}

// Routes mounts every endpoint on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assets", s.IndexAsset)
		r.Post("/assets/batch", s.IndexBatch)
		r.Post("/assets/batch/remove", s.RemoveBatch)
		r.Put("/assets/{id}/ai", s.UpdateAIResults)
		r.Delete("/assets/{id}", s.RemoveAsset)
		r.Get("/assets/{id}/similar", s.FindSimilar)

		r.Get("/search", s.SearchText)
		r.Post("/search/visual", s.SearchVisual)
		r.Post("/search/hybrid", s.SearchHybrid)

		r.Get("/stats", s.Stats)
		r.Post("/reload", s.Reload)
		r.Delete("/index", s.Clear)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// IndexAsset handles POST /api/v1/assets.
func (s *Server) IndexAsset(w http.ResponseWriter, r *http.Request) {
	var a asset.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if a.ID == uuid.Nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "asset id is required")
		return
	}
	if a.Path == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "asset path is required")
		return
	}
	if !a.Type.Valid() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown asset type "+strconv.Quote(string(a.Type)))
		return
	}

	if err := s.engine.IndexAsset(r.Context(), &a); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, indexAssetResponse{
		AssetID: a.ID.String(),
		Status:  "indexed",
	})
}

// IndexBatch handles POST /api/v1/assets/batch. Items succeed or fail
// independently; the response always carries one result per item.
func (s *Server) IndexBatch(w http.ResponseWriter, r *http.Request) {
	var req batchIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Assets) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "assets is required")
		return
	}

	results := s.batch.Index(r.Context(), req.Assets)
	writeJSON(w, http.StatusOK, newBatchResponse(results))
}

// RemoveBatch handles POST /api/v1/assets/batch/remove.
func (s *Server) RemoveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.AssetIDs) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "asset_ids is required")
		return
	}

	results := s.batch.Remove(r.Context(), req.AssetIDs)
	writeJSON(w, http.StatusOK, newBatchResponse(results))
}

// UpdateAIResults handles PUT /api/v1/assets/{id}/ai.
func (s *Server) UpdateAIResults(w http.ResponseWriter, r *http.Request) {
	assetID, ok := s.assetID(w, r)
	if !ok {
		return
	}

	var req aiUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	upd := req.toDomain()
	if upd.IsZero() {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "update carries no fields")
		return
	}

	if err := s.engine.UpdateAIResults(r.Context(), assetID, upd); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, indexAssetResponse{
		AssetID: assetID.String(),
		Status:  "updated",
	})
}

// RemoveAsset handles DELETE /api/v1/assets/{id}.
func (s *Server) RemoveAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := s.assetID(w, r)
	if !ok {
		return
	}

	if err := s.engine.RemoveAsset(r.Context(), assetID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchText handles GET /api/v1/search?q=...&limit=...
func (s *Server) SearchText(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter q is required")
		return
	}
	limit := queryLimit(r)

	results, err := s.searchTimed(r.Context(), "text", func(ctx context.Context) ([]search.Result, error) {
		return s.engine.SearchText(ctx, query, limit)
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSearchResponse(results))
}

// SearchVisual handles POST /api/v1/search/visual.
func (s *Server) SearchVisual(w http.ResponseWriter, r *http.Request) {
	var req visualSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Embedding) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "embedding is required")
		return
	}

	results, err := s.searchTimed(r.Context(), "visual", func(ctx context.Context) ([]search.Result, error) {
		return s.engine.SearchVisual(ctx, req.Embedding, req.Limit)
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSearchResponse(results))
}

// FindSimilar handles GET /api/v1/assets/{id}/similar?kind=visual&limit=...
func (s *Server) FindSimilar(w http.ResponseWriter, r *http.Request) {
	assetID, ok := s.assetID(w, r)
	if !ok {
		return
	}

	kind := embedding.Visual
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, err := embedding.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown embedding kind "+strconv.Quote(raw))
			return
		}
		kind = parsed
	}
	limit := queryLimit(r)

	results, err := s.searchTimed(r.Context(), "similar", func(ctx context.Context) ([]search.Result, error) {
		return s.engine.FindSimilar(ctx, assetID, kind, limit)
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSearchResponse(results))
}

// SearchHybrid handles POST /api/v1/search/hybrid.
func (s *Server) SearchHybrid(w http.ResponseWriter, r *http.Request) {
	var req hybridSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" && len(req.Embedding) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query or embedding is required")
		return
	}

	results, err := s.searchTimed(r.Context(), "hybrid", func(ctx context.Context) ([]search.Result, error) {
		return s.engine.SearchHybrid(ctx, req.Query, req.Embedding, req.Limit)
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSearchResponse(results))
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats(r.Context()))
}

// Reload handles POST /api/v1/reload. Rebuilds the in-memory indexes from
// the durable store.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reload(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Stats(r.Context()))
}

// Clear handles DELETE /api/v1/index.
func (s *Server) Clear(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Clear(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchTimed instruments one search call with count and duration metrics.
func (s *Server) searchTimed(
	ctx context.Context, mode string, fn func(context.Context) ([]search.Result, error),
) ([]search.Result, error) {
	start := time.Now()
	results, err := fn(ctx)
	if err == nil {
		metrics.SearchesTotal.WithLabelValues(mode).Inc()
		metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}
	return results, err
}

// assetID parses the {id} route parameter; writes an error response and
// returns false on failure.
func (s *Server) assetID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid asset id "+strconv.Quote(raw))
		return uuid.Nil, false
	}
	return id, true
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrIndexNotFound,
		domain.ErrSearchFailed,
		domain.ErrVectorDimMismatch,
		domain.ErrSerialization,
		domain.ErrCorruptedIndex,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
