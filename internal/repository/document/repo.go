// Package document persists asset documents in the durable key-value store.
// One entry per document, keyed by document id; a secondary asset-id entry
// maps each asset to its document so lookups avoid a full scan.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assetdex/internal/db"
	"github.com/kailas-cloud/assetdex/internal/domain"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/logger"
)

const (
	docKeyPrefix   = domain.KeyPrefix + "doc:"
	assetKeyPrefix = domain.KeyPrefix + "asset:"
)

// store is the consumer interface for documents (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/index.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put writes the document and its asset-id mapping. The document entry is
// the single durable source of truth; the asset entry is the secondary
// lookup index.
func (r *Repo) Put(ctx context.Context, doc *domdoc.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, docKey(doc.ID), data); err != nil {
		return fmt.Errorf("set %s: %w", docKey(doc.ID), err)
	}
	if err := r.store.Set(ctx, assetKey(doc.AssetID), []byte(doc.ID.String())); err != nil {
		return fmt.Errorf("set %s: %w", assetKey(doc.AssetID), err)
	}
	return nil
}

// Get returns a document by its document id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domdoc.Document, error) {
	raw, err := r.store.Get(ctx, docKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get %s: %w", docKey(id), err)
	}
	return decodeDocument(raw)
}

// ResolveAsset returns the document id owning the given asset id.
func (r *Repo) ResolveAsset(ctx context.Context, assetID uuid.UUID) (uuid.UUID, error) {
	raw, err := r.store.Get(ctx, assetKey(assetID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return uuid.Nil, domain.ErrDocumentNotFound
		}
		return uuid.Nil, fmt.Errorf("get %s: %w", assetKey(assetID), err)
	}

	docID, err := uuid.ParseBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse document id for asset %s: %w: %w",
			assetID, domain.ErrSerialization, err)
	}
	return docID, nil
}

// Delete removes the document entry and its asset mapping. Missing entries
// are not an error.
func (r *Repo) Delete(ctx context.Context, docID, assetID uuid.UUID) error {
	if err := r.store.Del(ctx, docKey(docID)); err != nil {
		return fmt.Errorf("del %s: %w", docKey(docID), err)
	}
	if err := r.store.Del(ctx, assetKey(assetID)); err != nil {
		return fmt.Errorf("del %s: %w", assetKey(assetID), err)
	}
	return nil
}

// ForEach iterates every persisted document. Records that fail to load or
// decode are logged and skipped, not fatal: the scan favors availability of
// the remaining index over strict completeness.
func (r *Repo) ForEach(ctx context.Context, fn func(*domdoc.Document) error) error {
	keys, err := r.store.Scan(ctx, docKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return fmt.Errorf("get %s: %w", key, err)
		}

		doc, err := decodeDocument(raw)
		if err != nil {
			log.Warn("skipping corrupt document record",
				zap.String("key", key), zap.Error(err))
			continue
		}

		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every assetdex entry from the durable store.
func (r *Repo) Clear(ctx context.Context) error {
	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan for clear: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}
	return nil
}

func docKey(id uuid.UUID) string {
	return docKeyPrefix + id.String()
}

func assetKey(id uuid.UUID) string {
	return assetKeyPrefix + id.String()
}
