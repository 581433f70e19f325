// Package mocks provides test doubles for the search gateway.
package mocks

import (
	"context"

	search "github.com/sells-group/opportunity-cli/internal/search"
	mock "github.com/stretchr/testify/mock"
)

// MockGateway is a mock type for the Gateway interface.
type MockGateway struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, query, maxResults
func (_m *MockGateway) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	ret := _m.Called(ctx, query, maxResults)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	var r0 []search.Result
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) ([]search.Result, error)); ok {
		return rf(ctx, query, maxResults)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) []search.Result); ok {
		r0 = rf(ctx, query, maxResults)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]search.Result)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, query, maxResults)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockGateway creates a new instance of MockGateway.
func NewMockGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGateway {
	mock := &MockGateway{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
