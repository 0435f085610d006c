package batch

import (
	"context"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/asset"
)

// Indexer is the subset of the index engine batch operations delegate to.
type Indexer interface {
	IndexAsset(ctx context.Context, a *asset.Asset) error
	RemoveAsset(ctx context.Context, assetID uuid.UUID) error
}
