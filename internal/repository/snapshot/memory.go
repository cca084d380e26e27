package snapshot

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/smuseum/internal/domain"
)

// Memory snapshots a batch by serializing and deserializing it in process.
// Used when no cache database is configured.
type Memory struct {
	total *prometheus.CounterVec
}

// NewMemory creates an in-process snapshotter. total may be nil.
func NewMemory(total *prometheus.CounterVec) *Memory {
	return &Memory{total: total}
}

// Snapshot returns a deserialized copy of batch.
func (m *Memory) Snapshot(_ context.Context, _ string, batch domain.Batch) (domain.Batch, error) {
	data, err := encode(batch)
	if err != nil {
		m.inc("error")
		return nil, err
	}
	out, err := decode(data, len(batch))
	if err != nil {
		m.inc("error")
		return nil, err
	}
	m.inc("ok")
	return out, nil
}

func (m *Memory) inc(result string) {
	if m.total != nil {
		m.total.WithLabelValues(result).Inc()
	}
}
