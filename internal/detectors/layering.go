package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	layeringMaxDepth   = 6
	layeringVisitLimit = 100
)

// DetectLayering runs a bounded BFS up to depth 6 from each account,
// visiting at most 100 distinct downstream accounts, and fires when the
// maximum depth reached is at least 4 (spec §4.3.16).
func DetectLayering(g *graph.Graph) map[string]domain.LayeringSignal {
	out := make(map[string]domain.LayeringSignal)

	for _, start := range g.AllAccounts() {
		depthOf := map[string]int{start: 0}
		queue := []string{start}
		maxDepth := 0
		visited := 0

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			depth := depthOf[cur]
			if depth >= layeringMaxDepth {
				continue
			}
			for _, next := range distinctOutNeighbors(g, cur) {
				if _, ok := depthOf[next]; ok {
					continue
				}
				if visited >= layeringVisitLimit {
					break
				}
				depthOf[next] = depth + 1
				visited++
				if depth+1 > maxDepth {
					maxDepth = depth + 1
				}
				queue = append(queue, next)
			}
		}

		if maxDepth >= 4 {
			out[start] = domain.LayeringSignal{MaxDepth: maxDepth, ChainComplexity: visited}
		}
	}
	return out
}
