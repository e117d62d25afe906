package community

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Detect runs the full Louvain stage (spec §4.4): build the weighted
// undirected projection, optimize it, keep communities of size [3,100],
// compute their metrics, and retain those with a smurfing score above
// 0.25.
func Detect(g *graph.Graph) []domain.Community {
	nodes, adjacency := buildProjection(g)
	if len(nodes) == 0 {
		return nil
	}

	assignment := runLouvain(nodes, adjacency)
	groups := groupCommunities(nodes, assignment)

	var out []domain.Community
	for _, members := range groups {
		if len(members) < 3 || len(members) > 100 {
			continue
		}
		c := buildCommunityMetrics(g, members)
		if c.SmurfingScore > 0.25 {
			out = append(out, c)
		}
	}
	return out
}
