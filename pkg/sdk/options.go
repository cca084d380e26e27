package smuseum

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string
	ttl      time.Duration

	museum      Museum
	httpClient  *http.Client
	timeout     time.Duration
	concurrency int
	skipFailed  bool
	maxObjects  int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis snapshots records in a Redis or Valkey instance instead of memory.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSnapshotTTL bounds how long a snapshot may outlive a crashed lookup.
// Default: 5 minutes.
func WithSnapshotTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.ttl = ttl
	})
}

// WithMuseum selects the collection backend. Default: the MET.
func WithMuseum(m Museum) Option {
	return optionFunc(func(c *clientConfig) {
		c.museum = m
	})
}

// WithHTTPClient sets the client used for museum calls. It overrides WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds each museum call. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithFetchConcurrency bounds parallel object fetches. Default: 4.
func WithFetchConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithSkipFailedFetches keeps a lookup going when single objects fail to load.
// By default the first failed fetch fails the lookup.
func WithSkipFailedFetches() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipFailed = true
	})
}

// WithMaxObjects caps how many searched objects are fetched. Default: no cap.
func WithMaxObjects(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxObjects = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
