package smuseum

import (
	"context"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/smuseum/internal/db/redis"
	"github.com/kailas-cloud/smuseum/internal/domain"
	"github.com/kailas-cloud/smuseum/internal/metrics"
	"github.com/kailas-cloud/smuseum/internal/repository/snapshot"
	"github.com/kailas-cloud/smuseum/internal/transport/museum"
	healthuc "github.com/kailas-cloud/smuseum/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/smuseum/internal/usecase/lookup"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 30 * time.Second
	defaultSnapshotTTL      = 5 * time.Minute
)

// Internal interfaces swapped out in tests.
type lookupUseCase interface {
	Lookup(ctx context.Context, q domain.Query) (lookupuc.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the smuseum SDK entry point.
type Client struct {
	store     *dbRedis.Store
	lookupSvc lookupUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. With WithRedis the provided context bounds the
// initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout: defaultTimeout,
		ttl:     defaultSnapshotTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	client := museum.NewClient(&museum.Config{
		Museum:     cfg.museum.toDomain(),
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})

	var (
		store     *dbRedis.Store
		snapshots lookupuc.Snapshotter = snapshot.NewMemory(metrics.SnapshotTotal)
		cache     healthuc.CachePinger
	)
	if len(cfg.addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("smuseum: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("smuseum: cache not ready: %w", err)
		}
		snapshots = snapshot.New(store, domain.KeyPrefix, cfg.ttl, metrics.SnapshotTotal, nil)
		cache = store
	}

	policy := lookupuc.FailureAbort
	if cfg.skipFailed {
		policy = lookupuc.FailureSkip
	}
	lookupSvc := lookupuc.New(client, snapshots, client.Museum().Name).
		WithFetchConcurrency(cfg.concurrency).
		WithFailurePolicy(policy).
		WithMaxObjects(cfg.maxObjects)

	return &Client{
		store:     store,
		lookupSvc: lookupSvc,
		healthSvc: healthuc.New(cache, client),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Lookup finds an artwork by artist whose title contains title, ignoring case.
// Not-found outcomes are results with Found false; museum failures are errors
// wrapping ErrRemote.
func (c *Client) Lookup(ctx context.Context, title, artist string) (Result, error) {
	start := time.Now()

	res, err := c.lookupSvc.Lookup(ctx, domain.Query{Title: title, Artist: artist})
	if err != nil {
		c.obs.observe("lookup", "error", start, err)
		return Result{}, fmt.Errorf("lookup: %w", err)
	}
	c.obs.observe("lookup", string(res.Status), start, nil)

	return Result{
		Found:      res.Status == lookupuc.StatusOK,
		Reason:     res.Reason,
		Link:       res.Link,
		Title:      res.Title,
		Artist:     res.Artist,
		Total:      res.Total,
		MatchCount: res.MatchCount,
		Museum:     res.Museum,
	}, nil
}

// Health checks the museum backend and, when configured, the cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

func (m Museum) toDomain() domain.Museum {
	return domain.Museum{
		Name:      m.Name,
		SearchURL: m.SearchURL,
		ObjectURL: m.ObjectURL,
		Fields: domain.MuseumFields{
			Title:     m.TitleField,
			Total:     m.TotalField,
			ObjectIDs: m.ObjectIDsField,
			Image:     m.ImageField,
		},
	}
}
