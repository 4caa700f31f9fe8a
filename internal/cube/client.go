package cube

import (
	"context"
	"errors"
)

// ErrQuery marks failures reported by the query service itself.
var ErrQuery = errors.New("query failed")

// Client resolves queries into results, one result per query in order.
type Client interface {
	Load(ctx context.Context, queries []Query) ([]Result, error)
}
