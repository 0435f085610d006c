package index

import (
	"context"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
)

// fakeRepo is an in-memory Repository with optional error injection.
type fakeRepo struct {
	docs   map[uuid.UUID]*domdoc.Document
	assets map[uuid.UUID]uuid.UUID // asset id -> document id

	putErr error
	getErr error
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:   make(map[uuid.UUID]*domdoc.Document),
		assets: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeRepo) Put(_ context.Context, doc *domdoc.Document) error {
	if f.putErr != nil {
		return f.putErr
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	f.assets[doc.AssetID] = doc.ID
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (*domdoc.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeRepo) ResolveAsset(_ context.Context, assetID uuid.UUID) (uuid.UUID, error) {
	docID, ok := f.assets[assetID]
	if !ok {
		return uuid.Nil, domain.ErrDocumentNotFound
	}
	return docID, nil
}

func (f *fakeRepo) Delete(_ context.Context, docID, assetID uuid.UUID) error {
	delete(f.docs, docID)
	delete(f.assets, assetID)
	return nil
}

func (f *fakeRepo) ForEach(_ context.Context, fn func(*domdoc.Document) error) error {
	for _, doc := range f.docs {
		cp := *doc
		if err := fn(&cp); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo) Clear(_ context.Context) error {
	f.docs = make(map[uuid.UUID]*domdoc.Document)
	f.assets = make(map[uuid.UUID]uuid.UUID)
	return nil
}
