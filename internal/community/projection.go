// Package community implements the Louvain modularity clustering stage
// (spec §4.4): a weighted undirected projection of the transaction graph,
// a simplified Louvain optimization over it, and smurfing-oriented metrics
// and classification for the communities that survive.
package community

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

type pairKey struct{ a, b string }

func canonicalPair(x, y string) pairKey {
	if x <= y {
		return pairKey{x, y}
	}
	return pairKey{y, x}
}

// buildProjection builds the undirected weighted projection described in
// spec §4.4: every unordered pair of accounts with at least one
// transaction between them gets an edge weighted k·c, where k is the
// transaction count on that pair and c is 2 when the sample variance of
// those transactions' amounts is under 20% of their mean, else 1.
// Self-loops don't participate — a projection edge needs two endpoints.
func buildProjection(g *graph.Graph) (nodes []string, adjacency map[string]map[string]float64) {
	grouped := make(map[pairKey][]domain.Transaction)
	for _, t := range g.AllTransactions() {
		if t.SenderID == t.ReceiverID {
			continue
		}
		key := canonicalPair(t.SenderID, t.ReceiverID)
		grouped[key] = append(grouped[key], t)
	}

	adjacency = make(map[string]map[string]float64)
	ensure := func(a string) {
		if _, ok := adjacency[a]; !ok {
			adjacency[a] = make(map[string]float64)
		}
	}

	for key, txs := range grouped {
		k := float64(len(txs))
		mean := meanAmount(txs)
		variance := varianceAmount(txs, mean)

		c := 1.0
		if mean > 0 && variance < 0.2*mean {
			c = 2.0
		}
		w := k * c

		ensure(key.a)
		ensure(key.b)
		adjacency[key.a][key.b] = w
		adjacency[key.b][key.a] = w
	}

	return g.AllAccounts(), adjacency
}
