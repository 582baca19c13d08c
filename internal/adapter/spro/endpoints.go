package spro

import (
	"errors"
	"fmt"

	"github.com/web3-frozen/spro-fees/internal/chain"
)

const subgraphHost = "https://subgraph.smardex.io"

// ErrUnsupportedNetwork is returned for a chain with no spro subgraph.
var ErrUnsupportedNetwork = errors.New("unsupported network")

var subgraphURLs = map[chain.Chain]string{
	chain.Ethereum: subgraphHost + "/ethereum/spro",
	chain.Arbitrum: subgraphHost + "/arbitrum/spro",
	chain.BSC:      subgraphHost + "/bsc/spro",
	chain.Base:     subgraphHost + "/base/spro",
	chain.Polygon:  subgraphHost + "/polygon/spro",
}

// SubgraphURL returns the spro subgraph endpoint for c.
func SubgraphURL(c chain.Chain) (string, error) {
	url, ok := subgraphURLs[c]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, c)
	}
	return url, nil
}
