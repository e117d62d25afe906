package detectors

import (
	"sort"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	chainMaxDepth  = 8
	chainMinLength = 5
	chainRetain    = 3
)

// DetectMoneyLaunderingChains is the opt-in deep scanner (spec §4.3.20):
// DFS from each account along a visited path, depth bounded to 8, keeping
// any path of at least 5 accounts and retaining the 3 longest per start.
// Disabled by default; the caller decides whether to run it.
func DetectMoneyLaunderingChains(g *graph.Graph) map[string]domain.ChainSignal {
	out := make(map[string]domain.ChainSignal)

	for _, start := range g.AllAccounts() {
		var chains [][]string

		var dfs func(path []string, onPath map[string]struct{})
		dfs = func(path []string, onPath map[string]struct{}) {
			if len(path) >= chainMinLength {
				chains = append(chains, append([]string{}, path...))
			}
			if len(path)-1 >= chainMaxDepth {
				return
			}
			for _, next := range distinctOutNeighbors(g, path[len(path)-1]) {
				if _, ok := onPath[next]; ok {
					continue
				}
				extended := append(append([]string{}, path...), next)
				onPath[next] = struct{}{}
				dfs(extended, onPath)
				delete(onPath, next)
			}
		}

		dfs([]string{start}, map[string]struct{}{start: {}})
		if len(chains) == 0 {
			continue
		}

		total := len(chains)
		sort.Slice(chains, func(i, j int) bool { return len(chains[i]) > len(chains[j]) })
		if len(chains) > chainRetain {
			chains = chains[:chainRetain]
		}

		out[start] = domain.ChainSignal{LongestChain: len(chains[0]), ChainCount: total}
	}
	return out
}
