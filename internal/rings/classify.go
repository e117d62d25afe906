package rings

import "github.com/fraudgraph/engine/internal/graph"
import "github.com/fraudgraph/engine/internal/domain"

// classifyByDegree assigns a connectivity-origin ring's pattern type from
// its member count and average total degree (spec §4.6). A 3-member ring
// is checked first: a bare 3-account cycle has low average degree (each
// account touches only its two cycle neighbors) and would otherwise be
// swallowed by the shell_chain band below it, which the worked example in
// spec §8 (three accounts round-tripping funds, classified "cycle") rules
// out.
func classifyByDegree(g *graph.Graph, members []string) string {
	if len(members) == 3 {
		return domain.RingPatternCycle
	}

	avg := averageDegree(g, members)
	switch {
	case avg <= 3:
		return domain.RingPatternShellChain
	case avg > 20:
		return domain.RingPatternSmurfing
	default:
		return domain.RingPatternHybrid
	}
}

func averageDegree(g *graph.Graph, members []string) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum int
	for _, m := range members {
		sum += g.Degree(m)
	}
	return float64(sum) / float64(len(members))
}
