// Package report assembles the final outbound Report (spec §4.7): sorted
// suspicious accounts with ring attachment, the fraud-ring list, and the
// summary block.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Build assembles a domain.Report from the scorer and ring assembler's
// output. Sorting (score descending, account id ascending on ties) and
// ring-id attachment happen here, not in the scorer, so a caller inspecting
// scoring's own output sees unordered results scoped strictly to that
// stage (spec §4.5/§4.7 draw this line explicitly).
func Build(g *graph.Graph, suspicious []domain.SuspiciousAccount, rings []domain.FraudRing, sig *domain.Signals, elapsed time.Duration) domain.Report {
	sorted := make([]domain.SuspiciousAccount, len(suspicious))
	copy(sorted, suspicious)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SuspicionScore != sorted[j].SuspicionScore {
			return sorted[i].SuspicionScore > sorted[j].SuspicionScore
		}
		return sorted[i].AccountID < sorted[j].AccountID
	})

	ringByAccount := make(map[string]string, len(sorted))
	for _, r := range rings {
		for _, m := range r.MemberAccounts {
			if _, ok := ringByAccount[m]; !ok {
				ringByAccount[m] = r.RingID
			}
		}
	}

	accounts := make([]domain.ReportAccount, 0, len(sorted))
	for _, s := range sorted {
		var ringID *string
		if id, ok := ringByAccount[s.AccountID]; ok {
			ringID = &id
		}
		accounts = append(accounts, domain.ReportAccount{
			AccountID:        s.AccountID,
			SuspicionScore:   s.SuspicionScore,
			DetectedPatterns: s.DetectedPatterns,
			RingID:           ringID,
		})
	}

	reportRings := make([]domain.ReportRing, 0, len(rings))
	for _, r := range rings {
		rr := domain.ReportRing{
			RingID:          r.RingID,
			MemberAccounts:  r.MemberAccounts,
			PatternType:     r.PatternType,
			RiskScore:       r.RiskScore,
			DetectionMethod: r.DetectionMethod,
		}
		if r.Density > 0 || len(r.CentralBeneficiaries) > 0 {
			density := r.Density
			rr.Density = &density
			rr.CentralBeneficiaries = r.CentralBeneficiaries
		}
		reportRings = append(reportRings, rr)
	}

	return domain.Report{
		SuspiciousAccounts: accounts,
		FraudRings:         reportRings,
		Summary:            buildSummary(g, sorted, rings, sig, elapsed),
	}
}

func buildSummary(g *graph.Graph, suspicious []domain.SuspiciousAccount, rings []domain.FraudRing, sig *domain.Signals, elapsed time.Duration) domain.Summary {
	return domain.Summary{
		TotalAccountsAnalyzed:        g.AccountCount(),
		SuspiciousAccountsFlagged:    len(suspicious),
		FraudRingsDetected:           len(rings),
		ProcessingTimeSeconds:        elapsed.Seconds(),
		CyclesDetected:               countDistinctCycles(sig),
		LouvainSmurfingRingsDetected: len(sig.Communities),
		PatternsAnalyzed:             domain.DetectorCount,
	}
}

// countDistinctCycles dedups cycles across accounts: the same cycle is
// recorded once per member account in sig.Cycles, so a cycle of length n
// appears n times unless collapsed by its normalized member sequence.
func countDistinctCycles(sig *domain.Signals) int {
	seen := make(map[string]struct{})
	for _, cycles := range sig.Cycles {
		for _, c := range cycles {
			seen[strings.Join(c.Members, ">")] = struct{}{}
		}
	}
	return len(seen)
}
