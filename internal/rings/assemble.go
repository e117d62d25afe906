package rings

import (
	"fmt"
	"sort"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Assemble builds fraud rings from two independent kinds of evidence (spec
// §4.6): connectivity (connected components of the suspicious-account
// subgraph) and Louvain community membership. A Louvain community that
// overlaps an existing connectivity ring heavily is folded into it rather
// than duplicated; otherwise it becomes its own louvain-origin ring.
func Assemble(g *graph.Graph, suspicious []domain.SuspiciousAccount, communities []domain.Community) []domain.FraudRing {
	scoreByAccount := make(map[string]float64, len(suspicious))
	suspiciousSet := make(map[string]struct{}, len(suspicious))
	for _, s := range suspicious {
		scoreByAccount[s.AccountID] = s.SuspicionScore
		suspiciousSet[s.AccountID] = struct{}{}
	}

	var out []domain.FraudRing
	nextID := 1

	for _, members := range connectedComponents(g, suspiciousSet) {
		ring := domain.FraudRing{
			RingID:          formatRingID(nextID),
			MemberAccounts:  members,
			DetectionMethod: domain.DetectionMethodConnectivity,
			PatternType:     classifyByDegree(g, members),
			RiskScore:       riskScore(members, scoreByAccount),
		}
		out = append(out, ring)
		nextID++
	}

	for _, c := range communities {
		mergedInto := -1
		for i := range out {
			if overlapRatio(out[i].MemberAccounts, c.Members) > 0.7 {
				mergedInto = i
				break
			}
		}

		if mergedInto >= 0 {
			out[mergedInto] = mergeLouvain(out[mergedInto], c, g, scoreByAccount)
			continue
		}

		members := append([]string(nil), c.Members...)
		sort.Strings(members)
		ring := domain.FraudRing{
			RingID:               formatRingID(nextID),
			MemberAccounts:       members,
			DetectionMethod:      domain.DetectionMethodLouvain,
			PatternType:          domain.RingPatternSmurfing,
			Density:              c.Density,
			CentralBeneficiaries: append([]string(nil), c.CentralBeneficiaries...),
			RiskScore:            riskScore(members, scoreByAccount),
		}
		out = append(out, ring)
		nextID++
	}

	return out
}

// mergeLouvain folds a Louvain community's evidence into an existing
// connectivity-origin ring: the member set becomes the union of both, and
// the community's density/central-beneficiary evidence attaches to the
// ring since it now has louvain support as well.
func mergeLouvain(ring domain.FraudRing, c domain.Community, g *graph.Graph, scoreByAccount map[string]float64) domain.FraudRing {
	memberSet := make(map[string]struct{}, len(ring.MemberAccounts)+len(c.Members))
	for _, m := range ring.MemberAccounts {
		memberSet[m] = struct{}{}
	}
	for _, m := range c.Members {
		memberSet[m] = struct{}{}
	}

	members := make([]string, 0, len(memberSet))
	for m := range memberSet {
		members = append(members, m)
	}
	sort.Strings(members)

	ring.MemberAccounts = members
	ring.Density = c.Density
	ring.CentralBeneficiaries = append([]string(nil), c.CentralBeneficiaries...)
	ring.PatternType = classifyByDegree(g, members)
	ring.RiskScore = riskScore(members, scoreByAccount)
	return ring
}

// overlapRatio is intersection size over the smaller set's size, the
// measure spec §4.6 uses to decide whether a Louvain community and an
// existing ring describe the same group of accounts.
func overlapRatio(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, x := range a {
		setA[x] = struct{}{}
	}

	inter := 0
	for _, x := range b {
		if _, ok := setA[x]; ok {
			inter++
		}
	}

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}
	return float64(inter) / float64(minLen)
}

func formatRingID(n int) string {
	return fmt.Sprintf("RING-%03d", n)
}
