package community

import "sort"

// runLouvain runs the simplified optimization from spec §4.4: every node
// starts in its own community; for up to 10 sweeps, each node computes a
// move gain against every neighboring community and relocates to the
// highest-gain target, ties broken by the smallest community id. A sweep
// with no moves ends the run early.
func runLouvain(nodes []string, adjacency map[string]map[string]float64) map[string]int {
	comm := make(map[string]int, len(nodes))
	for i, n := range nodes {
		comm[n] = i
	}

	for sweep := 0; sweep < 10; sweep++ {
		moved := false

		for _, node := range nodes {
			current := comm[node]

			weightToComm := make(map[int]float64)
			for neighbor, w := range adjacency[node] {
				weightToComm[comm[neighbor]] += w
			}
			weightToSource := weightToComm[current]

			candidates := make([]int, 0, len(weightToComm))
			for cid := range weightToComm {
				if cid != current {
					candidates = append(candidates, cid)
				}
			}
			sort.Ints(candidates)

			bestComm := -1
			var bestGain float64
			for _, cid := range candidates {
				gain := weightToComm[cid] - 0.5*weightToSource
				if gain > 0 && gain > bestGain {
					bestGain = gain
					bestComm = cid
				}
			}

			if bestComm != -1 {
				comm[node] = bestComm
				moved = true
			}
		}

		if !moved {
			break
		}
	}

	return comm
}

// groupCommunities collects the final community assignment into member
// slices, ordered by community id for deterministic downstream processing.
func groupCommunities(nodes []string, assignment map[string]int) [][]string {
	groups := make(map[int][]string)
	for _, n := range nodes {
		groups[assignment[n]] = append(groups[assignment[n]], n)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([][]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, groups[id])
	}
	return out
}
