package spro

import (
	"context"

	"github.com/web3-frozen/spro-fees/internal/adapter"
	"github.com/web3-frozen/spro-fees/internal/chain"
)

const (
	Name    = "smardex-p2p-lending"
	version = 1

	// sdexAddress is the SDEX token burned at proposal creation.
	sdexAddress = "0x5de8ab7e27f6e7a1fff3e5b337584aa43961beef"
	startDate   = "2025-05-22"
)

var methodology = map[string]string{
	"Fees":    "Protocol fees are given by interests paid in credit Tokens by Borrowers to Lenders, cumulated with the amount of SDEX burned at Proposal creation.",
	"Revenue": "Protocol revenue is the total amount of SDEX burned at each new Proposal creation.",
}

// Fetch returns the host fetch function for c. Burnt SDEX counts as both fee
// and revenue; credit token interest counts as fee only.
func (f *Fetcher) Fetch(c chain.Chain) adapter.FetchFunc {
	return func(ctx context.Context, opts adapter.FetchOptions) (*adapter.FetchResult, error) {
		m, err := f.FetchMetrics(ctx, opts.StartOfDay, c)
		if err != nil {
			return nil, err
		}

		dailyFees := opts.CreateBalances()
		dailyRevenue := opts.CreateBalances()

		dailyFees.AddToken(sdexAddress, m.TotalBurnt)
		for _, t := range m.PerToken {
			dailyFees.AddToken(t.TokenAddress, t.InterestPaid)
		}
		dailyRevenue.AddToken(sdexAddress, m.TotalBurnt)

		return &adapter.FetchResult{
			DailyFees:    dailyFees,
			DailyRevenue: dailyRevenue,
		}, nil
	}
}

// NewAdapter builds the per-chain adapter table for every chain with a
// subgraph endpoint.
func NewAdapter(f *Fetcher) *adapter.Adapter {
	chains := make(map[chain.Chain]adapter.ChainAdapter, len(subgraphURLs))
	for _, c := range chain.All() {
		if _, err := SubgraphURL(c); err != nil {
			continue
		}
		chains[c] = adapter.ChainAdapter{
			Fetch: f.Fetch(c),
			Start: startDate,
			Meta:  adapter.Meta{Methodology: methodology},
		}
	}
	return &adapter.Adapter{
		Name:    Name,
		Version: version,
		Chains:  chains,
	}
}
