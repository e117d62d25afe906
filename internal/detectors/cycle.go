package detectors

import (
	"strings"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// cycleHardCap bounds cycle enumeration whatever maxCycles the caller passes.
const cycleHardCap = 100

// DetectCycles enumerates simple directed cycles of length 3, 4, or 5
// (spec §4.3.1). DFS depth is bounded to 4 outgoing expansions from each
// start account; enumeration stops once maxCycles or cycleHardCap (100)
// cycles have been recorded, whichever is smaller. Cycles are normalized by rotating to the lexicographically smallest
// account id and deduplicated on that form. Reversed orderings of the same
// accounts are distinct cycles — direction is part of identity here, not
// an artifact to collapse.
func DetectCycles(g *graph.Graph, maxCycles int) map[string][]domain.CycleSignal {
	if maxCycles > cycleHardCap {
		maxCycles = cycleHardCap
	}
	result := make(map[string][]domain.CycleSignal)
	seen := make(map[string]struct{})
	count := 0

	var dfs func(start string, path []string, onPath map[string]struct{})
	dfs = func(start string, path []string, onPath map[string]struct{}) {
		if count >= maxCycles {
			return
		}
		current := path[len(path)-1]
		for _, next := range distinctOutNeighbors(g, current) {
			if count >= maxCycles {
				return
			}
			if next == start {
				if len(path) >= 3 && len(path) <= 5 {
					recordCycle(result, seen, &count, path)
				}
				continue
			}
			if _, onp := onPath[next]; onp {
				continue
			}
			if len(path) >= 5 {
				continue
			}
			extended := make([]string, len(path)+1)
			copy(extended, path)
			extended[len(path)] = next
			onPath[next] = struct{}{}
			dfs(start, extended, onPath)
			delete(onPath, next)
		}
	}

	for _, start := range g.AllAccounts() {
		if count >= maxCycles {
			break
		}
		dfs(start, []string{start}, map[string]struct{}{start: {}})
	}

	return result
}

func recordCycle(result map[string][]domain.CycleSignal, seen map[string]struct{}, count *int, path []string) {
	normalized := normalizeCycle(path)
	key := strings.Join(normalized, ">")
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	*count++

	sig := domain.CycleSignal{Members: normalized, Length: len(normalized)}
	for _, m := range normalized {
		result[m] = append(result[m], sig)
	}
}

// normalizeCycle rotates path so it starts with its lexicographically
// smallest account id, preserving the original traversal direction.
func normalizeCycle(path []string) []string {
	n := len(path)
	minIdx := 0
	for i := 1; i < n; i++ {
		if path[i] < path[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = path[(minIdx+i)%n]
	}
	return out
}
