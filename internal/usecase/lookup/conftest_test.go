package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/smuseum/internal/domain"
)

// --- Mocks ---

type mockCollection struct {
	mu sync.Mutex

	search    domain.SearchResult
	searchErr error
	records   map[int]domain.Record
	fetchErrs map[int]error
	delays    map[int]time.Duration

	searchCalls int
	fetched     []int
	inFlight    int
	maxInFlight int
}

func (m *mockCollection) Search(_ context.Context, _ string) (domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	return m.search, m.searchErr
}

func (m *mockCollection) FetchByID(ctx context.Context, id int) (domain.Record, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, id)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.delays[id]
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return domain.Record{}, domain.NewRemoteError("fetch", 0, ctx.Err().Error())
		}
	}
	if err := m.fetchErrs[id]; err != nil {
		return domain.Record{}, err
	}
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return domain.Record{ID: id}, nil
}

func (m *mockCollection) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetched)
}

type mockSnapshotter struct {
	mu      sync.Mutex
	err     error
	ids     []string
	batches []domain.Batch
}

func (m *mockSnapshotter) Snapshot(_ context.Context, requestID string, batch domain.Batch) (domain.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append(m.ids, requestID)
	m.batches = append(m.batches, batch)
	if m.err != nil {
		return nil, m.err
	}
	out := make(domain.Batch, len(batch))
	copy(out, batch)
	return out, nil
}

func str(s string) *string { return &s }

// quailCollection is the two-object MET scenario: one titled record with an
// image, one without an image.
func quailCollection() *mockCollection {
	return &mockCollection{
		search: domain.SearchResult{Total: 2, ObjectIDs: []int{10, 11}},
		records: map[int]domain.Record{
			10: {ID: 10, Title: str("Quail and Millet"), ImageLink: str("http://img/10")},
			11: {ID: 11, Title: str("Autumn Leaves")},
		},
	}
}
