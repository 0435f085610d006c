package sdk

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) *sdkMetrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assetdex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by name and status.",
		},
		[]string{"operation", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assetdex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
	return &sdkMetrics{
		operations: registerOrReuse(reg, operations),
		duration:   registerOrReuse(reg, duration),
	}
}

// registerOrReuse registers c, or returns the collector already registered
// under the same descriptor. Two clients sharing one registerer then share
// one set of series.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

// observer records one log line and one metrics sample per SDK operation.
// Both sinks are optional; a nil observer is a no-op.
type observer struct {
	log     *slog.Logger
	metrics *sdkMetrics
}

func newObserver(cfg clientConfig) *observer {
	obs := &observer{log: cfg.logger}
	if cfg.registerer != nil {
		obs.metrics = newSDKMetrics(cfg.registerer)
	}
	return obs
}

func (o *observer) observe(operation string, start time.Time, err error) {
	if o == nil {
		return
	}

	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(operation, status).Inc()
		o.metrics.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	}

	if o.log == nil {
		return
	}
	if err != nil {
		o.log.Warn("operation failed",
			slog.String("operation", operation),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
		return
	}
	o.log.Debug("operation completed",
		slog.String("operation", operation),
		slog.Duration("duration", elapsed),
	)
}
