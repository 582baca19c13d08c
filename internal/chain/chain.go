package chain

import (
	"errors"
	"fmt"
	"strings"
)

// Chain identifies a supported blockchain network.
type Chain string

const (
	Ethereum Chain = "ethereum"
	Arbitrum Chain = "arbitrum"
	BSC      Chain = "bsc"
	Base     Chain = "base"
	Polygon  Chain = "polygon"
)

var ErrUnknownChain = errors.New("unknown chain")

var all = []Chain{Ethereum, Arbitrum, BSC, Base, Polygon}

var displayNames = map[Chain]string{
	Ethereum: "Ethereum",
	Arbitrum: "Arbitrum One",
	BSC:      "BNB Smart Chain",
	Base:     "Base",
	Polygon:  "Polygon",
}

// All returns every known chain in a stable order.
func All() []Chain {
	out := make([]Chain, len(all))
	copy(out, all)
	return out
}

// Parse converts a user-supplied identifier into a Chain.
func Parse(s string) (Chain, error) {
	c := Chain(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := displayNames[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChain, s)
	}
	return c, nil
}

func (c Chain) String() string { return string(c) }

// DisplayName returns the human-readable network name, or the raw id.
func (c Chain) DisplayName() string {
	if n, ok := displayNames[c]; ok {
		return n
	}
	return string(c)
}
