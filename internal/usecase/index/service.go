// Package index orchestrates the text index, the vector store, and the
// durable document store, and keeps the three mutually consistent.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assetdex/internal/domain"
	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
	"github.com/kailas-cloud/assetdex/internal/domain/search"
	"github.com/kailas-cloud/assetdex/internal/index/textindex"
	"github.com/kailas-cloud/assetdex/internal/index/vectorstore"
	"github.com/kailas-cloud/assetdex/internal/logger"
	"github.com/kailas-cloud/assetdex/internal/metrics"
)

// Config holds the engine's scoring and limit options.
type Config struct {
	MaxResults     int
	MinSimilarity  float64
	TextWeight     float64
	VectorWeight   float64
	MinQueryLength int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxResults:     100,
		MinSimilarity:  0.7,
		TextWeight:     1.0,
		VectorWeight:   0.8,
		MinQueryLength: 2,
	}
}

// Service is the engine's single entry point. A single RWMutex guards the
// in-memory structures: writers hold it exclusively for the whole
// remove-then-add of one document, so searches observe either the pre-update
// or the post-update state, never a mix.
type Service struct {
	repo Repository
	cfg  Config

	mu      sync.RWMutex
	text    *textindex.Index
	vectors *vectorstore.Store
	loaded  bool
}

// New creates an index service with empty in-memory structures. Call Reload
// to rebuild them from the durable store.
func New(repo Repository, cfg Config) *Service {
	if cfg.MaxResults <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		repo:    repo,
		cfg:     cfg,
		text:    textindex.New(cfg.MinQueryLength),
		vectors: vectorstore.New(),
	}
}

// Reload rebuilds the in-memory text and vector indexes from the durable
// store. Safe to invoke at any time after suspected cache corruption; the
// durable entries are the single source of truth.
func (s *Service) Reload(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.text.Clear()
	s.vectors.Clear()

	loaded := 0
	err := s.repo.ForEach(ctx, func(doc *domdoc.Document) error {
		s.text.Add(doc)
		s.addEmbeddingsLocked(ctx, doc)
		loaded++
		return nil
	})
	if err != nil {
		return fmt.Errorf("reload from storage: %w", err)
	}

	s.loaded = true
	log.Info("index reloaded from storage", zap.Int("documents", loaded))
	return nil
}

// HealthCheck reports whether the in-memory indexes have been loaded from
// the durable store.
func (s *Service) HealthCheck(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return errors.New("index not loaded from storage")
	}
	return nil
}

// IndexAsset builds a document from the asset record and indexes it. When
// the asset is already indexed its document is replaced wholesale under the
// same document id, so no stale postings survive.
func (s *Service) IndexAsset(ctx context.Context, a *asset.Asset) error {
	doc := domdoc.FromAsset(a)
	doc.CalculateQualityScore()

	// Keep one document per asset: reuse the existing document id.
	if existing, err := s.repo.ResolveAsset(ctx, a.ID); err == nil {
		doc.ID = existing
	} else if !errors.Is(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("resolve asset %s: %w", a.ID, err)
	}

	s.mu.Lock()
	s.vectors.Remove(doc.ID)
	if len(doc.VisualEmbedding) > 0 {
		if err := s.vectors.Add(embedding.Visual, doc.ID, doc.VisualEmbedding); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.text.Add(doc)
	s.mu.Unlock()

	if err := s.repo.Put(ctx, doc); err != nil {
		return fmt.Errorf("persist document %s: %w", doc.ID, err)
	}

	metrics.DocumentsIndexed.Inc()
	logger.FromContext(ctx).Debug("asset indexed",
		zap.String("asset_id", a.ID.String()),
		zap.String("document_id", doc.ID.String()),
	)
	return nil
}

// UpdateAIResults merges asynchronously delivered AI results into the
// asset's document: tags, caption, transcription, and embeddings. The
// document is re-indexed idempotently and re-persisted.
func (s *Service) UpdateAIResults(ctx context.Context, assetID uuid.UUID, upd *domdoc.AIUpdate) error {
	docID, err := s.repo.ResolveAsset(ctx, assetID)
	if err != nil {
		return fmt.Errorf("resolve asset %s: %w", assetID, err)
	}

	doc, err := s.repo.Get(ctx, docID)
	if err != nil {
		return fmt.Errorf("get document %s: %w", docID, err)
	}

	doc.ApplyAIUpdate(upd)

	s.mu.Lock()
	if len(upd.VisualEmbedding) > 0 {
		if err := s.vectors.Add(embedding.Visual, doc.ID, upd.VisualEmbedding); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	if len(upd.TextEmbedding) > 0 {
		if err := s.vectors.Add(embedding.Text, doc.ID, upd.TextEmbedding); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.text.Add(doc)
	s.mu.Unlock()

	if err := s.repo.Put(ctx, doc); err != nil {
		return fmt.Errorf("persist document %s: %w", doc.ID, err)
	}

	logger.FromContext(ctx).Debug("ai results applied",
		zap.String("asset_id", assetID.String()),
		zap.String("document_id", doc.ID.String()),
	)
	return nil
}

// RemoveAsset removes the asset's document from the text index, the vector
// store, and the durable store. No-op when the asset was never indexed.
func (s *Service) RemoveAsset(ctx context.Context, assetID uuid.UUID) error {
	docID, err := s.repo.ResolveAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil
		}
		return fmt.Errorf("resolve asset %s: %w", assetID, err)
	}

	s.mu.Lock()
	s.text.Remove(docID)
	s.vectors.Remove(docID)
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, docID, assetID); err != nil {
		return fmt.Errorf("delete document %s: %w", docID, err)
	}

	metrics.DocumentsRemoved.Inc()
	return nil
}

// SearchText runs a full-text query and hydrates each hit from the durable
// store, attaching field-level highlights. Absence of matches is an empty
// result, never an error.
func (s *Service) SearchText(ctx context.Context, query string, limit int) ([]search.Result, error) {
	limit = s.clampLimit(limit)

	s.mu.RLock()
	matches := s.text.Search(query, limit)
	s.mu.RUnlock()

	results := make([]search.Result, 0, len(matches))
	for _, m := range matches {
		doc, err := s.hydrate(ctx, m.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}

		results = append(results, search.Result{
			Document:    doc,
			Score:       m.Score,
			TextScore:   m.Score,
			Highlights:  highlights(m.Fields),
			MatchReason: "text match in: " + strings.Join(matchedFields(m.Fields), ", "),
		})
	}
	return results, nil
}

// SearchVisual finds documents whose visual embedding is close to the query
// embedding.
func (s *Service) SearchVisual(ctx context.Context, emb []float32, limit int) ([]search.Result, error) {
	limit = s.clampLimit(limit)

	s.mu.RLock()
	matches, err := s.vectors.FindSimilar(embedding.Visual, emb, limit, s.cfg.MinSimilarity)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return s.vectorResults(ctx, matches, "visual similarity")
}

// FindSimilar finds documents similar to an already-indexed asset by the
// given embedding kind, excluding the asset's own document.
func (s *Service) FindSimilar(
	ctx context.Context, assetID uuid.UUID, kind embedding.Kind, limit int,
) ([]search.Result, error) {
	limit = s.clampLimit(limit)

	docID, err := s.repo.ResolveAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("resolve asset %s: %w", assetID, err)
	}

	s.mu.RLock()
	matches, err := s.vectors.FindSimilarToDocument(kind, docID, limit, s.cfg.MinSimilarity)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return s.vectorResults(ctx, matches, fmt.Sprintf("similar to asset %s", assetID))
}

// SearchHybrid merges text and vector hits into one ranked list. Both sides
// over-fetch 2x the limit; a document found by both contributes
// text*TextWeight + vector*VectorWeight and a combined match reason.
func (s *Service) SearchHybrid(
	ctx context.Context, query string, emb []float32, limit int,
) ([]search.Result, error) {
	limit = s.clampLimit(limit)

	merged := make(map[uuid.UUID]*search.Result)
	order := make([]uuid.UUID, 0)

	if strings.TrimSpace(query) != "" {
		textResults, err := s.SearchText(ctx, query, limit*2)
		if err != nil {
			return nil, err
		}
		for i := range textResults {
			r := textResults[i]
			r.Score = r.TextScore * s.cfg.TextWeight
			merged[r.Document.ID] = &r
			order = append(order, r.Document.ID)
		}
	}

	if len(emb) > 0 {
		vecResults, err := s.SearchVisual(ctx, emb, limit*2)
		if err != nil {
			return nil, err
		}
		for i := range vecResults {
			v := vecResults[i]
			if existing, ok := merged[v.Document.ID]; ok {
				existing.VectorScore = v.VectorScore
				existing.Score = existing.TextScore*s.cfg.TextWeight +
					v.VectorScore*s.cfg.VectorWeight
				existing.MatchReason += " + visual similarity"
				continue
			}
			v.Score = v.VectorScore * s.cfg.VectorWeight
			merged[v.Document.ID] = &v
			order = append(order, v.Document.ID)
		}
	}

	results := make([]search.Result, 0, len(merged))
	for _, id := range order {
		results = append(results, *merged[id])
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID.String() < results[j].Document.ID.String()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Stats aggregates text-index and vector-store statistics.
func (s *Service) Stats(_ context.Context) search.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts := s.text.Stats()
	vs := s.vectors.Stats()

	return search.Stats{
		TotalDocuments:   ts.TotalDocuments,
		TotalTerms:       ts.TotalTerms,
		AvgTermsPerDoc:   ts.AvgTermsPerDoc,
		VisualEmbeddings: vs.VisualCount,
		TextEmbeddings:   vs.TextCount,
		VisualDimension:  vs.VisualDimension,
		TextDimension:    vs.TextDimension,
	}
}

// Clear empties the durable store and both in-memory indexes.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}

	s.text.Clear()
	s.vectors.Clear()

	logger.FromContext(ctx).Info("all indexes cleared")
	return nil
}

// addEmbeddingsLocked pushes a document's stored embeddings into the vector
// store, logging and skipping inconsistent ones. Caller holds s.mu.
func (s *Service) addEmbeddingsLocked(ctx context.Context, doc *domdoc.Document) {
	log := logger.FromContext(ctx)
	if len(doc.VisualEmbedding) > 0 {
		if err := s.vectors.Add(embedding.Visual, doc.ID, doc.VisualEmbedding); err != nil {
			log.Warn("skipping visual embedding",
				zap.String("document_id", doc.ID.String()), zap.Error(err))
		}
	}
	if len(doc.TextEmbedding) > 0 {
		if err := s.vectors.Add(embedding.Text, doc.ID, doc.TextEmbedding); err != nil {
			log.Warn("skipping text embedding",
				zap.String("document_id", doc.ID.String()), zap.Error(err))
		}
	}
}

// hydrate loads a matched document from the durable store. A document
// removed between match and fetch yields nil, not an error.
func (s *Service) hydrate(ctx context.Context, id uuid.UUID) (*domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("hydrate document %s: %w", id, err)
	}
	return doc, nil
}

func (s *Service) vectorResults(
	ctx context.Context, matches []vectorstore.Match, reason string,
) ([]search.Result, error) {
	results := make([]search.Result, 0, len(matches))
	for _, m := range matches {
		doc, err := s.hydrate(ctx, m.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		results = append(results, search.Result{
			Document:    doc,
			Score:       m.Similarity,
			VectorScore: m.Similarity,
			MatchReason: reason,
		})
	}
	return results, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 || limit > s.cfg.MaxResults {
		return s.cfg.MaxResults
	}
	return limit
}

func highlights(fields []textindex.FieldMatch) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Field+": "+f.Term)
	}
	return out
}

// matchedFields returns the distinct matched field names in first-seen order.
func matchedFields(fields []textindex.FieldMatch) []string {
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		out = append(out, f.Field)
	}
	return out
}
