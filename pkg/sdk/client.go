package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	dbredis "github.com/kailas-cloud/assetdex/internal/db/redis"
	documentrepo "github.com/kailas-cloud/assetdex/internal/repository/document"
	indexuc "github.com/kailas-cloud/assetdex/internal/usecase/index"
)

// Client is an embedded assetdex engine backed by Redis. All methods are
// safe for concurrent use.
type Client struct {
	store  *dbredis.Store
	engine *indexuc.Service
	obs    *observer
}

// New connects to Redis, builds the engine, and loads the in-memory
// indexes from the durable store. Close must be called when done.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if len(cfg.redisAddrs) == 0 {
		return nil, errors.New("sdk: a redis address is required, use WithRedis")
	}

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.redisAddrs,
		Username: cfg.redisUsername,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("sdk: create store: %w", err)
	}
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sdk: database not ready: %w", err)
	}

	engine := indexuc.New(documentrepo.New(store), cfg.engine)
	if err := engine.Reload(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("sdk: load index: %w", err)
	}

	return &Client{
		store:  store,
		engine: engine,
		obs:    newObserver(cfg),
	}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	start := time.Now()
	err := c.store.Ping(ctx)
	c.obs.observe("ping", start, err)
	return err
}

// IndexAsset indexes an asset record, replacing any previous document for
// the same asset.
func (c *Client) IndexAsset(ctx context.Context, a *Asset) error {
	start := time.Now()
	err := c.engine.IndexAsset(ctx, a)
	c.obs.observe("index_asset", start, err)
	return err
}

// UpdateAIResults merges asynchronously produced AI results into the
// asset's document.
func (c *Client) UpdateAIResults(ctx context.Context, assetID uuid.UUID, upd *AIUpdate) error {
	start := time.Now()
	err := c.engine.UpdateAIResults(ctx, assetID, upd)
	c.obs.observe("update_ai_results", start, err)
	return err
}

// RemoveAsset removes the asset's document from every index. No-op when
// the asset was never indexed.
func (c *Client) RemoveAsset(ctx context.Context, assetID uuid.UUID) error {
	start := time.Now()
	err := c.engine.RemoveAsset(ctx, assetID)
	c.obs.observe("remove_asset", start, err)
	return err
}

// SearchText runs a full-text query.
func (c *Client) SearchText(ctx context.Context, query string, limit int) ([]Result, error) {
	start := time.Now()
	results, err := c.engine.SearchText(ctx, query, limit)
	c.obs.observe("search_text", start, err)
	return results, err
}

// SearchVisual finds documents whose visual embedding is close to the
// query embedding.
func (c *Client) SearchVisual(ctx context.Context, emb []float32, limit int) ([]Result, error) {
	start := time.Now()
	results, err := c.engine.SearchVisual(ctx, emb, limit)
	c.obs.observe("search_visual", start, err)
	return results, err
}

// FindSimilar finds documents similar to an already-indexed asset by the
// given embedding kind.
func (c *Client) FindSimilar(
	ctx context.Context, assetID uuid.UUID, kind Kind, limit int,
) ([]Result, error) {
	start := time.Now()
	results, err := c.engine.FindSimilar(ctx, assetID, kind, limit)
	c.obs.observe("find_similar", start, err)
	return results, err
}

// SearchHybrid merges text and vector hits into one ranked list.
func (c *Client) SearchHybrid(
	ctx context.Context, query string, emb []float32, limit int,
) ([]Result, error) {
	start := time.Now()
	results, err := c.engine.SearchHybrid(ctx, query, emb, limit)
	c.obs.observe("search_hybrid", start, err)
	return results, err
}

// Stats reports index statistics.
func (c *Client) Stats(ctx context.Context) Stats {
	start := time.Now()
	stats := c.engine.Stats(ctx)
	c.obs.observe("stats", start, nil)
	return stats
}

// Reload rebuilds the in-memory indexes from the durable store.
func (c *Client) Reload(ctx context.Context) error {
	start := time.Now()
	err := c.engine.Reload(ctx)
	c.obs.observe("reload", start, err)
	return err
}

// Clear empties the durable store and every in-memory index.
func (c *Client) Clear(ctx context.Context) error {
	start := time.Now()
	err := c.engine.Clear(ctx)
	c.obs.observe("clear", start, err)
	return err
}
