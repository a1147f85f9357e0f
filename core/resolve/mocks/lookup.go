package mocks

import (
	"context"

	"id-reconciler/core/resolve"

	"github.com/stretchr/testify/mock"
)

// Lookup is a mock implementation of resolve.Lookup
type Lookup struct {
	mock.Mock
}

func (m *Lookup) Search(ctx context.Context, req resolve.SearchRequest) ([]string, error) {
	args := m.Called(ctx, req)
	if handles, ok := args.Get(0).([]string); ok {
		return handles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Lookup) Summary(ctx context.Context, req resolve.SummaryRequest) (resolve.Summary, error) {
	args := m.Called(ctx, req)
	if s, ok := args.Get(0).(resolve.Summary); ok {
		return s, args.Error(1)
	}
	return resolve.Summary{}, args.Error(1)
}
