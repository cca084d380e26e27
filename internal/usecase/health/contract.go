package health

import "context"

// CachePinger checks record cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// MuseumChecker checks that the museum backend is reachable.
type MuseumChecker interface {
	HealthCheck(ctx context.Context) error
}
