// Package snapshot persists a fetched record batch and reloads it for matching.
// Every snapshot lives under its own request-scoped key.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/smuseum/internal/db"
	"github.com/kailas-cloud/smuseum/internal/domain"
)

// store is the consumer interface for snapshot persistence (ISP).
type store interface {
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// Repo writes batches to a key-value store and reads them back.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
	keep   bool
	total  *prometheus.CounterVec
	logger *zap.Logger
}

// New creates a store-backed snapshot repository.
// total is a counter vec with label "result" ("ok"/"error"), passed explicitly; may be nil. A nil logger discards output.
func New(s store, prefix string, ttl time.Duration, total *prometheus.CounterVec, logger *zap.Logger) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{
		store:  s,
		prefix: prefix,
		ttl:    ttl,
		total:  total,
		logger: logger,
	}
}

// WithKeep leaves snapshots in the store until their TTL expires.
func (r *Repo) WithKeep(keep bool) *Repo {
	r.keep = keep
	return r
}

// Snapshot persists batch under requestID, reloads it and returns the reloaded copy.
func (r *Repo) Snapshot(ctx context.Context, requestID string, batch domain.Batch) (domain.Batch, error) {
	if requestID == "" {
		r.inc("error")
		return nil, errors.New("snapshot: request id is required")
	}
	key := r.Key(requestID)

	data, err := encode(batch)
	if err != nil {
		r.inc("error")
		return nil, err
	}

	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.inc("error")
		return nil, fmt.Errorf("persist snapshot %s: %w", key, err)
	}
	if !r.keep {
		defer r.drop(key)
	}

	stored, err := r.store.Get(ctx, key)
	if err != nil {
		r.inc("error")
		return nil, fmt.Errorf("reload snapshot %s: %w", key, err)
	}

	out, err := decode(stored, len(batch))
	if err != nil {
		r.inc("error")
		return nil, fmt.Errorf("reload snapshot %s: %w", key, err)
	}

	r.inc("ok")
	return out, nil
}

// Key returns the store key for a request.
func (r *Repo) Key(requestID string) string {
	return r.prefix + "batch:" + requestID
}

// drop runs detached from the request context so a cancelled request still cleans up.
func (r *Repo) drop(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.store.Del(ctx, key); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		r.logger.Warn("Failed to drop snapshot", zap.String("key", key), zap.Error(err))
	}
}

func (r *Repo) inc(result string) {
	if r.total != nil {
		r.total.WithLabelValues(result).Inc()
	}
}

func encode(batch domain.Batch) ([]byte, error) {
	if batch == nil {
		batch = domain.Batch{}
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte, want int) (domain.Batch, error) {
	var out domain.Batch
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("snapshot holds %d records, want %d", len(out), want)
	}
	return out, nil
}
