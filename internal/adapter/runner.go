package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/web3-frozen/spro-fees/internal/balances"
	"github.com/web3-frozen/spro-fees/internal/chain"
	"github.com/web3-frozen/spro-fees/internal/metrics"
)

var (
	ErrAdapterNotFound   = errors.New("adapter not found")
	ErrChainNotSupported = errors.New("chain not supported by adapter")
	ErrBeforeStart       = errors.New("day is before adapter start date")
)

// Runner holds registered adapters and runs them for a given day and chain.
type Runner struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	adapters map[string]*Adapter
}

func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		logger:   logger,
		adapters: make(map[string]*Adapter),
	}
}

// Register adds an adapter under its name, replacing any previous one.
func (r *Runner) Register(a *Adapter) {
	r.mu.Lock()
	r.adapters[a.Name] = a
	r.mu.Unlock()
	r.logger.Info("registered adapter", "adapter", a.Name, "chains", len(a.Chains))
}

// Names returns the registered adapter names in sorted order.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Runner) Get(name string) (*Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	return a, ok
}

// Run executes the named adapter for c on the UTC day containing day.
func (r *Runner) Run(ctx context.Context, name string, c chain.Chain, day time.Time) (*FetchResult, error) {
	a, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotFound, name)
	}
	ca, ok := a.Chains[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrChainNotSupported, name, c)
	}

	startOfDay := StartOfDay(day)
	if ca.Start != "" {
		start, err := ParseDay(ca.Start)
		if err != nil {
			return nil, fmt.Errorf("parse start date %q: %w", ca.Start, err)
		}
		if startOfDay < start.Unix() {
			return nil, fmt.Errorf("%w: %s starts %s", ErrBeforeStart, name, ca.Start)
		}
	}

	begin := time.Now()
	res, err := ca.Fetch(ctx, FetchOptions{
		StartOfDay:     startOfDay,
		CreateBalances: balances.New,
	})
	metrics.AdapterRunDuration.WithLabelValues(name, c.String()).Observe(time.Since(begin).Seconds())
	if err != nil {
		metrics.AdapterRunsTotal.WithLabelValues(name, c.String(), "error").Inc()
		r.logger.Error("adapter run failed", "adapter", name, "chain", c, "start_of_day", startOfDay, "error", err)
		return nil, err
	}
	metrics.AdapterRunsTotal.WithLabelValues(name, c.String(), "success").Inc()
	metrics.TokensReported.WithLabelValues(name, c.String()).Set(float64(res.DailyFees.Len()))

	r.logger.Info("adapter run",
		"adapter", name,
		"chain", c,
		"start_of_day", startOfDay,
		"fee_tokens", res.DailyFees.Len(),
		"duration", time.Since(begin).Round(time.Millisecond).String(),
	)
	return res, nil
}
