package smuseum

import (
	"context"

	"github.com/kailas-cloud/smuseum/internal/domain"
	healthuc "github.com/kailas-cloud/smuseum/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/smuseum/internal/usecase/lookup"
)

// --- lookupUseCase mock ---

type mockLookupUC struct {
	lookupFn func(ctx context.Context, q domain.Query) (lookupuc.Result, error)
}

func (m *mockLookupUC) Lookup(ctx context.Context, q domain.Query) (lookupuc.Result, error) {
	return m.lookupFn(ctx, q)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
