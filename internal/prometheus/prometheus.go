// Package prometheus serves dashboard queries from a Prometheus server by
// translating them to PromQL.
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/prometheus/prometheus/promql/parser"
)

// ErrResultType is returned when the server answers with a value of a type
// the caller did not ask for.
var ErrResultType = errors.New("unexpected result type")

// Client runs instant and range queries.
type Client interface {
	Query(ctx context.Context, query string, ts time.Time, timeout time.Duration) (v1.Warnings, model.Vector, error)
	QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error)
}

type httpClient struct {
	api v1.API
}

// NewClient returns a Client for the Prometheus server at url.
func NewClient(url string) (Client, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	return &httpClient{api: v1.NewAPI(client)}, nil
}

// as asserts that v holds a value of type want.
func as[T model.Value](v model.Value, want model.ValueType) (T, error) {
	var zero T
	if v == nil {
		return zero, fmt.Errorf("%w: none, want %s", ErrResultType, want)
	}
	if v.Type() != want {
		return zero, fmt.Errorf("%w: %s, want %s", ErrResultType, v.Type(), want)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrResultType, v)
	}
	return t, nil
}

func (c *httpClient) Query(ctx context.Context, query string, ts time.Time, timeout time.Duration) (v1.Warnings, model.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, warnings, err := c.api.Query(ctx, query, ts, v1.WithTimeout(timeout))
	if err != nil {
		return warnings, nil, err
	}
	vector, err := as[model.Vector](result, model.ValVector)
	return warnings, vector, err
}

func (c *httpClient) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration, timeout time.Duration) (model.Matrix, v1.Warnings, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := v1.Range{Start: start, End: end, Step: step}
	result, warnings, err := c.api.QueryRange(ctx, query, r, v1.WithTimeout(timeout))
	if err != nil {
		return nil, warnings, err
	}
	matrix, err := as[model.Matrix](result, model.ValMatrix)
	return matrix, warnings, err
}

// FormatQuery pretty-prints a PromQL expression, returning it unchanged when
// it does not parse.
func FormatQuery(query string) string {
	expr, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return expr.Pretty(0)
}
