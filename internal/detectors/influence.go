package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	influenceIterations = 3
	influenceDamping    = 0.85
)

type influenceEdge struct {
	to int
	w  float64
}

// DetectNetworkInfluence runs a fixed 3-iteration weighted PageRank-style
// power iteration with damping 0.85 and uniform teleport over the
// transaction-count-weighted directed graph, restricted to at most
// sampleSize accounts. Scores are normalized by the maximum value reached;
// accounts above 0.5 fire (spec §4.3.14). The iteration count is
// deliberately small and fixed — not tuned for convergence — to keep
// output reproducible across runs on the same input (spec §9).
func DetectNetworkInfluence(g *graph.Graph, sampleSize int) map[string]domain.NetworkInfluenceSignal {
	out := make(map[string]domain.NetworkInfluenceSignal)

	accounts := g.AllAccounts()
	if sampleSize > 0 && len(accounts) > sampleSize {
		accounts = accounts[:sampleSize]
	}
	n := len(accounts)
	if n == 0 {
		return out
	}

	idx := make(map[string]int, n)
	for i, a := range accounts {
		idx[a] = i
	}

	outWeight := make([]float64, n)
	adj := make([][]influenceEdge, n)
	for i, a := range accounts {
		weights := make(map[string]float64)
		for _, t := range g.Outgoing(a) {
			if _, ok := idx[t.ReceiverID]; ok {
				weights[t.ReceiverID]++
			}
		}
		for r, w := range weights {
			adj[i] = append(adj[i], influenceEdge{to: idx[r], w: w})
			outWeight[i] += w
		}
	}

	pr := make([]float64, n)
	for i := range pr {
		pr[i] = 1 / float64(n)
	}

	for iter := 0; iter < influenceIterations; iter++ {
		next := make([]float64, n)
		base := (1 - influenceDamping) / float64(n)
		for i := range next {
			next[i] = base
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				continue
			}
			share := influenceDamping * pr[i] / outWeight[i]
			for _, e := range adj[i] {
				next[e.to] += share * e.w
			}
		}
		pr = next
	}

	var max float64
	for _, v := range pr {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return out
	}

	for i, a := range accounts {
		norm := pr[i] / max
		if norm > 0.5 {
			out[a] = domain.NetworkInfluenceSignal{NormalizedScore: norm}
		}
	}
	return out
}
