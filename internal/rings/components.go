// Package rings implements the ring assembler (spec §4.6): connected
// components over the suspicious-account subgraph, merged with Louvain
// community evidence, each scored and classified.
package rings

import (
	"sort"

	"github.com/fraudgraph/engine/internal/graph"
)

// connectedComponents finds connected components of the induced,
// symmetrized subgraph over suspicious accounts via BFS, in deterministic
// discovery order (accounts visited in graph first-seen order).
func connectedComponents(g *graph.Graph, suspicious map[string]struct{}) [][]string {
	visited := make(map[string]bool, len(suspicious))
	var components [][]string

	for _, acct := range g.AllAccounts() {
		if _, ok := suspicious[acct]; !ok || visited[acct] {
			continue
		}

		var comp []string
		queue := []string{acct}
		visited[acct] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)

			for neighbor := range g.Counterparties(cur) {
				if _, ok := suspicious[neighbor]; !ok || visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}

		sort.Strings(comp)
		components = append(components, comp)
	}
	return components
}
