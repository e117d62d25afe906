package scoring

import (
	"math"

	"github.com/fraudgraph/engine/internal/domain"
)

// louvainBonus implements spec §4.5's bonus formula, capped at 40:
// 20·score + (15 for a central beneficiary, else 10) + a pattern-class
// bonus + a density bonus + a consistency bonus. The pattern-class bonus
// bands are this repo's own resolution of the spec's "2..5" range, ordered
// by how concentrated/deliberate each classification implies the ring is.
func louvainBonus(c domain.Community, isCentral bool) float64 {
	beneficiaryBonus := 10.0
	if isCentral {
		beneficiaryBonus = 15.0
	}

	densityBonus := 3 * math.Min(c.Density, 1)
	consistencyBonus := 3 * c.AmountConsistency

	total := 20*c.SmurfingScore + beneficiaryBonus + patternClassBonus(c.PatternClass) + densityBonus + consistencyBonus
	if total > 40 {
		return 40
	}
	return total
}

func patternClassBonus(class string) float64 {
	switch class {
	case domain.PatternStructuredSmurfing:
		return 5
	case domain.PatternCoordinatedBurstSmurfing:
		return 4
	case domain.PatternSingleBeneficiarySmurfing:
		return 4
	case domain.PatternMultiBeneficiaryRing:
		return 3
	default: // DISTRIBUTED_SMURFING_NETWORK
		return 2
	}
}

func isCentralBeneficiary(community domain.Community, acct string) bool {
	for _, m := range community.CentralBeneficiaries {
		if m == acct {
			return true
		}
	}
	return false
}
