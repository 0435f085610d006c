package index

import (
	"context"

	"github.com/google/uuid"

	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
)

// Repository is the durable document store consumed by the service. The
// durable entries are authoritative; the in-memory indexes are a cache
// rebuilt from them.
type Repository interface {
	Put(ctx context.Context, doc *domdoc.Document) error
	Get(ctx context.Context, id uuid.UUID) (*domdoc.Document, error)
	ResolveAsset(ctx context.Context, assetID uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, docID, assetID uuid.UUID) error
	ForEach(ctx context.Context, fn func(*domdoc.Document) error) error
	Clear(ctx context.Context) error
}
