package spro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/web3-frozen/spro-fees/internal/chain"
	"github.com/web3-frozen/spro-fees/internal/metrics"
	"github.com/web3-frozen/spro-fees/internal/subgraph"
)

var ErrMalformedRecordID = errors.New("malformed record id")

// Options configures the fetcher.
type Options struct {
	// APIKey is sent as x-api-key. An empty key is sent as-is.
	APIKey string
}

// Querier runs a GraphQL query and decodes the data envelope into out.
type Querier interface {
	Query(ctx context.Context, endpoint, name, query string, out any) error
}

// TokenInterest is the interest paid in one credit token on a day.
type TokenInterest struct {
	TokenAddress string
	InterestPaid decimal.Decimal
}

// Metrics is the per-day result read from the subgraph.
type Metrics struct {
	TotalBurnt decimal.Decimal
	PerToken   []TokenInterest
}

// Fetcher reads daily metrics from the spro subgraph.
type Fetcher struct {
	client  Querier
	logger  *slog.Logger
	resolve func(chain.Chain) (string, error)
}

// NewFetcher builds a fetcher. A nil hc uses the subgraph client default.
func NewFetcher(opts Options, hc *http.Client, logger *slog.Logger) *Fetcher {
	clientOpts := []subgraph.Option{
		subgraph.WithLogger(logger),
		subgraph.WithHeader("origin", subgraphHost),
		subgraph.WithHeader("referer", subgraphHost),
		subgraph.WithHeader("x-api-key", opts.APIKey),
	}
	if hc != nil {
		clientOpts = append(clientOpts, subgraph.WithHTTPClient(hc))
	}
	return &Fetcher{
		client:  subgraph.NewClient(clientOpts...),
		logger:  logger,
		resolve: SubgraphURL,
	}
}

// amount holds a decimal sent either as a JSON string or a bare number.
// null decodes to the empty amount.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	*a = amount(b)
	return nil
}

type globalMetricsResponse struct {
	Collection []struct {
		TotalSdexBurnt amount `json:"totalSdexBurnt"`
	} `json:"dailyGlobalMetrics_collection"`
}

type tokenMetricsResponse struct {
	Collection []tokenMetricRow `json:"dailyTokenMetrics_collection"`
}

type tokenMetricRow struct {
	// ID has the form <day>-<tokenAddress>.
	ID                string `json:"id"`
	TotalInterestPaid amount `json:"totalInterestPaid"`
}

func globalMetricsQuery(day int64) string {
	return fmt.Sprintf(`{
  dailyGlobalMetrics_collection(where: { id: "%d" }) {
    totalSdexBurnt
  }
}`, day)
}

func tokenMetricsQuery(day int64) string {
	return fmt.Sprintf(`{
  dailyTokenMetrics_collection(where: { day: "%d" }) {
    id
    totalInterestPaid
  }
}`, day)
}

// FetchMetrics returns the metrics for day on c. Only an unsupported chain is
// reported as an error; any query or decode failure yields zero metrics.
func (f *Fetcher) FetchMetrics(ctx context.Context, day int64, c chain.Chain) (*Metrics, error) {
	url, err := f.resolve(c)
	if err != nil {
		return nil, err
	}

	m, err := f.query(ctx, url, day)
	if err != nil {
		metrics.FetchFallbacksTotal.WithLabelValues(c.String()).Inc()
		f.logger.Warn("spro subgraph unavailable, reporting zero",
			"chain", c, "day", day, "error", err)
		return &Metrics{TotalBurnt: decimal.Zero, PerToken: []TokenInterest{}}, nil
	}
	return m, nil
}

// query fails as a whole if either query or any row fails.
func (f *Fetcher) query(ctx context.Context, url string, day int64) (*Metrics, error) {
	var (
		global globalMetricsResponse
		tokens tokenMetricsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.client.Query(gctx, url, "daily_global_metrics", globalMetricsQuery(day), &global)
	})
	g.Go(func() error {
		return f.client.Query(gctx, url, "daily_token_metrics", tokenMetricsQuery(day), &tokens)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	burnt := decimal.Zero
	if len(global.Collection) > 0 && global.Collection[0].TotalSdexBurnt != "" {
		v, err := decimal.NewFromString(string(global.Collection[0].TotalSdexBurnt))
		if err != nil {
			return nil, fmt.Errorf("parse totalSdexBurnt %q: %w", global.Collection[0].TotalSdexBurnt, err)
		}
		burnt = v
	}

	perToken := make([]TokenInterest, 0, len(tokens.Collection))
	for _, row := range tokens.Collection {
		ti, err := parseTokenMetric(row)
		if err != nil {
			return nil, err
		}
		perToken = append(perToken, ti)
	}

	return &Metrics{TotalBurnt: burnt, PerToken: perToken}, nil
}

func parseTokenMetric(row tokenMetricRow) (TokenInterest, error) {
	addr, err := tokenAddress(row.ID)
	if err != nil {
		return TokenInterest{}, err
	}
	// Strict: one unparseable amount sends the whole day to the zero fallback.
	paid, err := decimal.NewFromString(string(row.TotalInterestPaid))
	if err != nil {
		return TokenInterest{}, fmt.Errorf("parse totalInterestPaid %q for %s: %w", row.TotalInterestPaid, row.ID, err)
	}
	return TokenInterest{TokenAddress: addr, InterestPaid: paid}, nil
}

// tokenAddress drops the day prefix from a "<day>-<address>" id.
func tokenAddress(id string) (string, error) {
	_, addr, ok := strings.Cut(id, "-")
	if !ok || addr == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedRecordID, id)
	}
	return addr, nil
}
