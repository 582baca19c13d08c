package subgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/machinebox/graphql"

	"github.com/web3-frozen/spro-fees/internal/metrics"
)

// Client issues GraphQL queries against subgraph endpoints. Every request
// carries the same static headers. A query is attempted once.
type Client struct {
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. Its timeout is the
// only timeout applied to a query.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeader adds a header sent on every request. Empty values are kept.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// WithLogger sets the logger for per-query debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a Client with a 30s HTTP timeout unless overridden.
// Responses with a non-2xx status are reported as *StatusError whatever
// their body. The HTTP client passed in is copied, never modified.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    make(http.Header),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	hc.Transport = statusTransport{next: c.httpClient.Transport}
	c.httpClient = &hc
	return c
}

// StatusError is returned when a subgraph answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// maxErrorBody bounds how much of a rejected response ends up in the error.
const maxErrorBody = 256

// statusTransport fails non-2xx responses before the GraphQL decoder sees
// them. A gateway rejection such as 401 {"error":"Unauthorized"} is valid
// JSON and would otherwise decode as an empty result.
type statusTransport struct {
	next http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
}

// Query runs query against endpoint and decodes the data envelope into out.
// name labels the query in logs and metrics.
func (c *Client) Query(ctx context.Context, endpoint, name, query string, out any) error {
	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(c.httpClient))
	gql.Log = func(s string) { c.logger.Debug("graphql", "query", name, "msg", s) }

	req := graphql.NewRequest(query)
	for k, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	err := gql.Run(ctx, req, out)
	metrics.SubgraphQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SubgraphQueriesTotal.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("subgraph query %s: %w", name, err)
	}
	metrics.SubgraphQueriesTotal.WithLabelValues(name, "success").Inc()
	return nil
}
