package adapter

import (
	"context"
	"time"

	"github.com/web3-frozen/spro-fees/internal/balances"
	"github.com/web3-frozen/spro-fees/internal/chain"
)

// FetchOptions is what the host hands to a chain adapter for one day.
type FetchOptions struct {
	// StartOfDay is the unix timestamp of midnight UTC for the requested day.
	StartOfDay     int64
	CreateBalances balances.Factory
}

// FetchResult holds the two balance maps produced for a day.
type FetchResult struct {
	DailyFees    *balances.Balances `json:"dailyFees"`
	DailyRevenue *balances.Balances `json:"dailyRevenue"`
}

// FetchFunc computes the daily result for one chain.
type FetchFunc func(ctx context.Context, opts FetchOptions) (*FetchResult, error)

// Meta is documentation published alongside an adapter.
type Meta struct {
	Methodology map[string]string `json:"methodology"`
}

// ChainAdapter wires a fetch function to a chain.
type ChainAdapter struct {
	Fetch FetchFunc
	// Start is the first supported day, formatted as 2006-01-02.
	Start string
	Meta  Meta
}

// Adapter is a named set of per-chain adapters.
type Adapter struct {
	Name    string
	Version int
	Chains  map[chain.Chain]ChainAdapter
}

const dateLayout = "2006-01-02"

// StartOfDay returns the unix timestamp of midnight UTC for t's day.
func StartOfDay(t time.Time) int64 {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// ParseDay parses a 2006-01-02 date as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
