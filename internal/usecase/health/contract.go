package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks search index readiness.
type IndexChecker interface {
	HealthCheck(ctx context.Context) error
}
