package prometheus

import (
	"context"
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	QueryFunc      func(query string, ts time.Time, timeout time.Duration) (v1.Warnings, model.Vector, error)
	QueryRangeFunc func(query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error)
}

func (m *MockClient) Query(_ context.Context, query string, ts time.Time, timeout time.Duration) (v1.Warnings, model.Vector, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(query, ts, timeout)
	}
	return nil, nil, nil
}

func (m *MockClient) QueryRange(_ context.Context, query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error) {
	if m.QueryRangeFunc != nil {
		return m.QueryRangeFunc(query, start, end, step, timeout)
	}
	return nil, nil, nil
}
