package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/smuseum/internal/domain"
	"github.com/kailas-cloud/smuseum/internal/domain/match"
	"github.com/kailas-cloud/smuseum/internal/logger"
	"github.com/kailas-cloud/smuseum/internal/metrics"
)

// FailurePolicy decides what a failed per-object fetch does to the lookup.
type FailurePolicy string

const (
	// FailureAbort fails the whole lookup on the first fetch error.
	FailureAbort FailurePolicy = "abort"
	// FailureSkip keeps an id-only record in the failed slot; the matcher skips it.
	FailureSkip FailurePolicy = "skip"
)

const defaultFetchConcurrency = 4

// Service runs the lookup pipeline: search, fetch, snapshot, match, compose.
type Service struct {
	collection  Collection
	snapshots   Snapshotter
	museum      string
	concurrency int
	policy      FailurePolicy
	maxObjects  int
	newID       func() string
}

// New creates a lookup service for the named museum.
func New(collection Collection, snapshots Snapshotter, museum string) *Service {
	return &Service{
		collection:  collection,
		snapshots:   snapshots,
		museum:      museum,
		concurrency: defaultFetchConcurrency,
		policy:      FailureAbort,
		newID:       uuid.NewString,
	}
}

// WithFetchConcurrency bounds parallel object fetches. 1 fetches strictly in order.
func (s *Service) WithFetchConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithFailurePolicy sets the per-object fetch failure policy.
func (s *Service) WithFailurePolicy(p FailurePolicy) *Service {
	if p == FailureAbort || p == FailureSkip {
		s.policy = p
	}
	return s
}

// WithMaxObjects caps how many searched ids are fetched. 0 means no cap.
func (s *Service) WithMaxObjects(n int) *Service {
	if n >= 0 {
		s.maxObjects = n
	}
	return s
}

// Lookup resolves q against the museum collection.
// A failed artist search (or, under FailureAbort, a failed object fetch) is
// returned as an error wrapping *domain.RemoteError; not-found outcomes are results.
func (s *Service) Lookup(ctx context.Context, q domain.Query) (Result, error) {
	ctx = logger.With(ctx,
		zap.String("artist", q.Artist),
		zap.String("title", q.Title),
		zap.String("museum", s.museum),
	)
	log := logger.FromContext(ctx)

	found, err := s.collection.Search(ctx, q.Artist)
	if err != nil {
		s.count("upstream_error")
		return Result{}, fmt.Errorf("search artist: %w", err)
	}

	if found.Empty() {
		log.Warn("No artworks for artist", zap.Int("total", found.Total))
		s.count("no_artist")
		return composeNoArtist(q, found.Total, s.museum), nil
	}

	// A positive total without ids still means the artist exists: no title can match.
	if len(found.ObjectIDs) == 0 {
		log.Warn("Artist total without object ids", zap.Int("total", found.Total))
		s.count("no_title")
		return composeNoTitle(q, found.Total, s.museum), nil
	}

	ids := found.ObjectIDs
	if s.maxObjects > 0 && len(ids) > s.maxObjects {
		log.Debug("Capping fetched objects", zap.Int("ids", len(ids)), zap.Int("max", s.maxObjects))
		ids = ids[:s.maxObjects]
	}

	batch, err := s.fetchAll(ctx, log, ids)
	if err != nil {
		s.count("upstream_error")
		return Result{}, err
	}
	metrics.LookupFetchedObjects.Observe(float64(len(batch)))

	snapshotID := s.newID()
	records, err := s.snapshots.Snapshot(ctx, snapshotID, batch)
	if err != nil {
		s.count("snapshot_error")
		return Result{}, fmt.Errorf("snapshot records: %w", err)
	}

	out := match.Match(records, q.Title)
	if !out.Found() {
		log.Warn("No artwork titled like query", zap.Int("total", found.Total))
		s.count("no_title")
		return composeNoTitle(q, found.Total, s.museum), nil
	}

	res := composeFound(q, found.Total, out, s.museum)
	log.Info("Artwork found",
		zap.String("link", res.Link),
		zap.Int("object_id", out.Selected.ID),
		zap.Int("total", found.Total),
		zap.Int("match_count", out.Count),
		zap.String("snapshot_id", snapshotID),
	)
	s.count("ok")
	return res, nil
}

// fetchAll resolves ids into records with bounded concurrency.
// Each record lands in the slot of its id, so the batch keeps search order.
func (s *Service) fetchAll(ctx context.Context, log *zap.Logger, ids []int) (domain.Batch, error) {
	batch := make(domain.Batch, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.collection.FetchByID(gctx, id)
			if err == nil {
				batch[i] = rec
				return nil
			}
			if s.policy == FailureSkip && ctx.Err() == nil {
				log.Warn("Skipping object after fetch failure", zap.Int("object_id", id), zap.Error(err))
				batch[i] = domain.Record{ID: id}
				return nil
			}
			return fmt.Errorf("fetch object %d: %w", id, err)
		})
	}

	if err := g.Wait(); err != nil {
		if !errors.Is(err, domain.ErrRemote) && ctx.Err() != nil {
			return nil, fmt.Errorf("fetch objects: %w", ctx.Err())
		}
		return nil, err
	}
	return batch, nil
}

func (s *Service) count(outcome string) {
	metrics.LookupsTotal.WithLabelValues(s.museum, outcome).Inc()
}
