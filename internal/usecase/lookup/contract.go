package lookup

import (
	"context"

	"github.com/kailas-cloud/smuseum/internal/domain"
)

// Collection is the museum backend: an artist search plus a per-object fetch.
type Collection interface {
	Search(ctx context.Context, artist string) (domain.SearchResult, error)
	FetchByID(ctx context.Context, id int) (domain.Record, error)
}

// Snapshotter persists a batch under a request-scoped key and returns the reloaded copy.
type Snapshotter interface {
	Snapshot(ctx context.Context, requestID string, batch domain.Batch) (domain.Batch, error)
}
