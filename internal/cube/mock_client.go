package cube

import "context"

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	LoadFunc func(ctx context.Context, queries []Query) ([]Result, error)
}

func (m *MockClient) Load(ctx context.Context, queries []Query) ([]Result, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, queries)
	}
	return make([]Result, len(queries)), nil
}
