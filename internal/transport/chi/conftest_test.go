package chi

import (
	"context"

	"github.com/google/uuid"

	"github.com/kailas-cloud/assetdex/internal/domain/asset"
	domdoc "github.com/kailas-cloud/assetdex/internal/domain/document"
	"github.com/kailas-cloud/assetdex/internal/domain/embedding"
	"github.com/kailas-cloud/assetdex/internal/domain/search"
)

// mockEngine implements Engine with overridable func fields.
type mockEngine struct {
	indexAssetFn      func(ctx context.Context, a *asset.Asset) error
	updateAIResultsFn func(ctx context.Context, assetID uuid.UUID, upd *domdoc.AIUpdate) error
	removeAssetFn     func(ctx context.Context, assetID uuid.UUID) error
	searchTextFn      func(ctx context.Context, query string, limit int) ([]search.Result, error)
	searchVisualFn    func(ctx context.Context, emb []float32, limit int) ([]search.Result, error)
	findSimilarFn     func(ctx context.Context, assetID uuid.UUID, kind embedding.Kind, limit int) ([]search.Result, error)
	searchHybridFn    func(ctx context.Context, query string, emb []float32, limit int) ([]search.Result, error)
	statsFn           func(ctx context.Context) search.Stats
	clearFn           func(ctx context.Context) error
	reloadFn          func(ctx context.Context) error
}

var _ Engine = (*mockEngine)(nil)

func (m *mockEngine) IndexAsset(ctx context.Context, a *asset.Asset) error {
	if m.indexAssetFn != nil {
		return m.indexAssetFn(ctx, a)
	}
	return nil
}

func (m *mockEngine) UpdateAIResults(ctx context.Context, assetID uuid.UUID, upd *domdoc.AIUpdate) error {
	if m.updateAIResultsFn != nil {
		return m.updateAIResultsFn(ctx, assetID, upd)
	}
	return nil
}

func (m *mockEngine) RemoveAsset(ctx context.Context, assetID uuid.UUID) error {
	if m.removeAssetFn != nil {
		return m.removeAssetFn(ctx, assetID)
	}
	return nil
}

func (m *mockEngine) SearchText(ctx context.Context, query string, limit int) ([]search.Result, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockEngine) SearchVisual(ctx context.Context, emb []float32, limit int) ([]search.Result, error) {
	if m.searchVisualFn != nil {
		return m.searchVisualFn(ctx, emb, limit)
	}
	return nil, nil
}

func (m *mockEngine) FindSimilar(
	ctx context.Context, assetID uuid.UUID, kind embedding.Kind, limit int,
) ([]search.Result, error) {
	if m.findSimilarFn != nil {
		return m.findSimilarFn(ctx, assetID, kind, limit)
	}
	return nil, nil
}

func (m *mockEngine) SearchHybrid(
	ctx context.Context, query string, emb []float32, limit int,
) ([]search.Result, error) {
	if m.searchHybridFn != nil {
		return m.searchHybridFn(ctx, query, emb, limit)
	}
	return nil, nil
}

func (m *mockEngine) Stats(ctx context.Context) search.Stats {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return search.Stats{}
}

func (m *mockEngine) Clear(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

func (m *mockEngine) Reload(ctx context.Context) error {
	if m.reloadFn != nil {
		return m.reloadFn(ctx)
	}
	return nil
}

// mockPinger implements health.DBPinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }
