// Package batch implements bulk asset operations with per-item error
// reporting: one bad item fails alone, the rest of the batch proceeds.
package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	dombatch "github.com/kailas-cloud/assetdex/internal/domain/batch"
)

// MaxBatchSize is the maximum number of items per batch request.
const MaxBatchSize = 100

// Service handles batch asset operations.
type Service struct {
	engine       Indexer
	maxBatchSize int
}

// New creates a batch service.
func New(engine Indexer) *Service {
	return &Service{engine: engine, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Index indexes assets one-by-one with per-item results. Items are
// validated before touching the engine; an oversized batch fails whole.
func (s *Service) Index(ctx context.Context, assets []asset.Asset) []dombatch.Result {
	results := make([]dombatch.Result, len(assets))

	if len(assets) > s.maxBatchSize {
		for i := range assets {
			results[i] = dombatch.NewError(
				assets[i].ID,
				fmt.Errorf("batch size exceeds %d", s.maxBatchSize),
			)
		}
		return results
	}

	for i := range assets {
		a := &assets[i]
		if err := validateAsset(a); err != nil {
			results[i] = dombatch.NewError(a.ID, err)
			continue
		}
		if err := s.engine.IndexAsset(ctx, a); err != nil {
			results[i] = dombatch.NewError(a.ID, fmt.Errorf("index: %w", err))
			continue
		}
		results[i] = dombatch.NewOK(a.ID)
	}

	return results
}

// Remove removes assets by id in batch. Unknown assets are a per-item
// success, matching single-asset removal semantics.
func (s *Service) Remove(ctx context.Context, ids []uuid.UUID) []dombatch.Result {
	results := make([]dombatch.Result, len(ids))

	if len(ids) > s.maxBatchSize {
		for i, id := range ids {
			results[i] = dombatch.NewError(id, fmt.Errorf("batch size exceeds %d", s.maxBatchSize))
		}
		return results
	}

	for i, id := range ids {
		if id == uuid.Nil {
			results[i] = dombatch.NewError(id, fmt.Errorf("asset id is required"))
			continue
		}
		if err := s.engine.RemoveAsset(ctx, id); err != nil {
			results[i] = dombatch.NewError(id, fmt.Errorf("remove: %w", err))
			continue
		}
		results[i] = dombatch.NewOK(id)
	}

	return results
}

func validateAsset(a *asset.Asset) error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("asset id is required")
	}
	if a.Path == "" {
		return fmt.Errorf("asset path is required")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("unknown asset type %q", a.Type)
	}
	return nil
}
