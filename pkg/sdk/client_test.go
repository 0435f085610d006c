package sdk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestOptions_Apply(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	cfg := defaultClientConfig()
	for _, opt := range []Option{
		WithRedis("localhost:6379", "localhost:6380"),
		WithRedisAuth("user", "secret"),
		WithRedisDB(3),
		WithReadinessTimeout(2 * time.Second),
		WithMaxResults(50),
		WithMinSimilarity(0.5),
		WithSearchWeights(0.9, 0.4),
		WithMinQueryLength(3),
		WithLogger(log),
		WithPrometheus(reg),
	} {
		opt.apply(&cfg)
	}

	if len(cfg.redisAddrs) != 2 || cfg.redisAddrs[0] != "localhost:6379" {
		t.Errorf("unexpected addrs: %v", cfg.redisAddrs)
	}
	if cfg.redisUsername != "user" || cfg.redisPassword != "secret" || cfg.redisDB != 3 {
		t.Error("redis auth options not applied")
	}
	if cfg.readinessTimeout != 2*time.Second {
		t.Errorf("unexpected readiness timeout: %v", cfg.readinessTimeout)
	}
	if cfg.engine.MaxResults != 50 || cfg.engine.MinSimilarity != 0.5 {
		t.Error("engine limit options not applied")
	}
	if cfg.engine.TextWeight != 0.9 || cfg.engine.VectorWeight != 0.4 {
		t.Error("search weight options not applied")
	}
	if cfg.engine.MinQueryLength != 3 {
		t.Error("min query length option not applied")
	}
	if cfg.logger != log || cfg.registerer != reg {
		t.Error("observability options not applied")
	}
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := defaultClientConfig()

	if cfg.readinessTimeout != 10*time.Second {
		t.Errorf("unexpected default readiness timeout: %v", cfg.readinessTimeout)
	}
	if cfg.engine.MaxResults != 100 || cfg.engine.MinSimilarity != 0.7 {
		t.Errorf("unexpected engine defaults: %+v", cfg.engine)
	}
	if cfg.logger != nil || cfg.registerer != nil {
		t.Error("observability must be opt-in")
	}
}

func TestNew_RequiresRedisAddress(t *testing.T) {
	if _, err := New(context.Background()); err == nil {
		t.Fatal("expected an error without WithRedis")
	}
}

func TestObserver_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := newObserver(clientConfig{registerer: reg})

	obs.observe("search_text", time.Now(), nil)
	obs.observe("search_text", time.Now(), errors.New("boom"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	statuses := make(map[string]float64)
	for _, fam := range families {
		if fam.GetName() != "assetdex_sdk_operations_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			var operation, status string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "operation":
					operation = l.GetValue()
				case "status":
					status = l.GetValue()
				}
			}
			if operation == "search_text" {
				statuses[status] = m.GetCounter().GetValue()
			}
		}
	}

	if statuses["ok"] != 1 {
		t.Errorf("expected one ok sample, got %f", statuses["ok"])
	}
	if statuses["error"] != 1 {
		t.Errorf("expected one error sample, got %f", statuses["error"])
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("ping", time.Now(), nil)

	obs = newObserver(clientConfig{})
	obs.observe("ping", time.Now(), errors.New("boom"))
}

func TestObserver_LogsWithoutMetrics(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	obs := newObserver(clientConfig{logger: log})

	obs.observe("index_asset", time.Now(), nil)
	obs.observe("index_asset", time.Now(), errors.New("boom"))
}

func TestRegisterOrReuse_SharesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newSDKMetrics(reg)
	second := newSDKMetrics(reg)

	if first.operations != second.operations {
		t.Error("expected the operations counter to be shared")
	}
	if first.duration != second.duration {
		t.Error("expected the duration histogram to be shared")
	}
}
