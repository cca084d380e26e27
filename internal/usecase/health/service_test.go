package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

type mockMuseumChecker struct {
	err error
}

func (m *mockMuseumChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockCachePinger{}, &mockMuseumChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckCache] != CheckOK {
		t.Errorf("expected cache %q, got %q", CheckOK, r.Checks[CheckCache])
	}
	if r.Checks[CheckMuseum] != CheckOK {
		t.Errorf("expected museum %q, got %q", CheckOK, r.Checks[CheckMuseum])
	}
}

func TestCheck_CacheError(t *testing.T) {
	svc := New(&mockCachePinger{err: errors.New("conn refused")}, &mockMuseumChecker{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckCache] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks[CheckCache])
	}
	if r.Checks[CheckMuseum] != CheckOK {
		t.Errorf("expected museum %q, got %q", CheckOK, r.Checks[CheckMuseum])
	}
}

func TestCheck_MuseumError(t *testing.T) {
	svc := New(&mockCachePinger{}, &mockMuseumChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckMuseum] != CheckError {
		t.Errorf("expected museum %q, got %q", CheckError, r.Checks[CheckMuseum])
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(
		&mockCachePinger{err: errors.New("cache down")},
		&mockMuseumChecker{err: errors.New("museum down")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckCache] != CheckError || r.Checks[CheckMuseum] != CheckError {
		t.Errorf("expected both errors, got %v", r.Checks)
	}
}

func TestCheck_MemoryCache(t *testing.T) {
	svc := New(nil, &mockMuseumChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckCache]; ok {
		t.Error("cache check should be absent without a cache database")
	}
}

func TestCheck_MemoryCache_MuseumDown(t *testing.T) {
	svc := New(nil, &mockMuseumChecker{err: errors.New("dns")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}
