package sdk

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	indexuc "github.com/kailas-cloud/assetdex/internal/usecase/index"
)

// Option configures the client during New.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(cfg *clientConfig) { f(cfg) }

type clientConfig struct {
	redisAddrs    []string
	redisUsername string
	redisPassword string
	redisDB       int

	readinessTimeout time.Duration

	engine indexuc.Config

	logger     *slog.Logger
	registerer prometheus.Registerer
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		readinessTimeout: 10 * time.Second,
		engine:           indexuc.DefaultConfig(),
	}
}

// WithRedis sets the Redis addresses the client connects to. Required.
func WithRedis(addrs ...string) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.redisAddrs = addrs
	})
}

// WithRedisAuth sets Redis credentials.
func WithRedisAuth(username, password string) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.redisUsername = username
		cfg.redisPassword = password
	})
}

// WithRedisDB selects a logical Redis database.
func WithRedisDB(db int) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.redisDB = db
	})
}

// WithReadinessTimeout bounds how long New waits for the database to
// answer pings before giving up.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.readinessTimeout = d
	})
}

// WithMaxResults caps the number of results any search returns.
func WithMaxResults(n int) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.engine.MaxResults = n
	})
}

// WithMinSimilarity sets the cosine-similarity floor for vector searches.
func WithMinSimilarity(threshold float64) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.engine.MinSimilarity = threshold
	})
}

// WithSearchWeights sets the text and vector weights hybrid search uses
// to fuse component scores.
func WithSearchWeights(text, vector float64) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.engine.TextWeight = text
		cfg.engine.VectorWeight = vector
	})
}

// WithMinQueryLength sets the minimum token length the text index keeps.
func WithMinQueryLength(n int) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.engine.MinQueryLength = n
	})
}

// WithLogger enables structured logs for every SDK operation.
func WithLogger(log *slog.Logger) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.logger = log
	})
}

// WithPrometheus registers SDK operation metrics on the given registerer.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.registerer = reg
	})
}
