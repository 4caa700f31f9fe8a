package cube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/api"
)

const loadEndpoint = "/cubejs-api/v1/load"

type loadRequest struct {
	Query Query `json:"query"`
}

type loadResponse struct {
	Data  []Row  `json:"data"`
	Error string `json:"error"`
}

// HTTPClient talks to the Cube REST API.
type HTTPClient struct {
	api     api.Client
	token   string
	timeout time.Duration
}

// NewHTTPClient returns a client for the service at url. The token, when set,
// is sent as the Authorization header.
func NewHTTPClient(url, token string, timeout time.Duration) (*HTTPClient, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating cube client: %w", err)
	}
	return &HTTPClient{api: client, token: token, timeout: timeout}, nil
}

// Load sends one request per query and stops at the first failure.
func (c *HTTPClient) Load(ctx context.Context, queries []Query) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for _, q := range queries {
		r, err := c.load(ctx, q)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (c *HTTPClient) load(ctx context.Context, q Query) (Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(loadRequest{Query: q})
	if err != nil {
		return Result{}, fmt.Errorf("encoding query: %w", err)
	}
	u := c.api.URL(loadEndpoint, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, data, err := c.api.Do(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("posting query: %w", err)
	}

	var lr loadResponse
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if decodeErr := decoder.Decode(&lr); decodeErr != nil && resp.StatusCode/100 == 2 {
		return Result{}, fmt.Errorf("decoding response: %w", decodeErr)
	}
	if resp.StatusCode/100 != 2 {
		msg := lr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Result{}, fmt.Errorf("%w: %d %s", ErrQuery, resp.StatusCode, msg)
	}
	if lr.Error != "" {
		return Result{}, fmt.Errorf("%w: %s", ErrQuery, lr.Error)
	}
	return Result{Data: lr.Data}, nil
}
