package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smuseum/internal/domain"
	gen "github.com/kailas-cloud/smuseum/internal/transport/generated"
	healthuc "github.com/kailas-cloud/smuseum/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/smuseum/internal/usecase/lookup"
)

// --- Mocks ---

type mockCollection struct {
	search    domain.SearchResult
	searchErr error
	records   map[int]domain.Record
	fetchErr  error
}

func (m *mockCollection) Search(_ context.Context, _ string) (domain.SearchResult, error) {
	return m.search, m.searchErr
}

func (m *mockCollection) FetchByID(_ context.Context, id int) (domain.Record, error) {
	if m.fetchErr != nil {
		return domain.Record{}, m.fetchErr
	}
	return m.records[id], nil
}

type mockSnapshotter struct {
	err error
}

func (m *mockSnapshotter) Snapshot(_ context.Context, _ string, batch domain.Batch) (domain.Batch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return batch, nil
}

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error        { return m.err }
func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Helpers ---

func str(s string) *string { return &s }

func quailCollection() *mockCollection {
	return &mockCollection{
		search: domain.SearchResult{Total: 2, ObjectIDs: []int{10, 11}},
		records: map[int]domain.Record{
			10: {ID: 10, Title: str("Quail and Millet"), ImageLink: str("http://img/10")},
			11: {ID: 11, Title: str("Autumn Leaves")},
		},
	}
}

type testEnv struct {
	collection *mockCollection
	snapshots  *mockSnapshotter
	cache      *mockChecker
	museum     *mockChecker
}

func newTestEnv() *testEnv {
	return &testEnv{
		collection: quailCollection(),
		snapshots:  &mockSnapshotter{},
		cache:      &mockChecker{},
		museum:     &mockChecker{},
	}
}

func (e *testEnv) handler() http.Handler {
	lookup := lookupuc.New(e.collection, e.snapshots, "MET")
	health := healthuc.New(e.cache, e.museum)
	srv := NewServer(lookup, health, zap.NewNop())
	return gen.HandlerWithOptions(srv, gen.ChiServerOptions{
		ErrorHandlerFunc: srv.HandleParamError,
	})
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}
