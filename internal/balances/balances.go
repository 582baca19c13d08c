package balances

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Balances accumulates token amounts keyed by token identifier.
// Identifiers are stored verbatim.
type Balances struct {
	amounts map[string]decimal.Decimal
}

// Factory creates an empty balance map.
type Factory func() *Balances

func New() *Balances {
	return &Balances{amounts: make(map[string]decimal.Decimal)}
}

// AddToken adds amount to token. The key is created even when amount is zero.
func (b *Balances) AddToken(token string, amount decimal.Decimal) {
	b.amounts[token] = b.amounts[token].Add(amount)
}

// Get returns the amount held for token, zero if absent.
func (b *Balances) Get(token string) decimal.Decimal {
	return b.amounts[token]
}

// Has reports whether token has an entry.
func (b *Balances) Has(token string) bool {
	_, ok := b.amounts[token]
	return ok
}

func (b *Balances) Len() int { return len(b.amounts) }

// Tokens returns the token identifiers in sorted order.
func (b *Balances) Tokens() []string {
	out := make([]string, 0, len(b.amounts))
	for t := range b.amounts {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both maps hold the same tokens with equal amounts.
func (b *Balances) Equal(other *Balances) bool {
	if b.Len() != other.Len() {
		return false
	}
	for t, v := range b.amounts {
		ov, ok := other.amounts[t]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (b *Balances) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(b.amounts))
	for t, v := range b.amounts {
		out[t] = v.String()
	}
	return json.Marshal(out)
}
