// Package integration exercises the worked examples from the analysis
// engine's specification end to end, mostly by driving individual stages
// (graph, detectors, scoring) directly so each scenario's numeric
// contribution can be checked against its documented formula, and by
// driving the full engine where a scenario's outcome depends on assembly
// across stages (Louvain community rings, merchant shielding).
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/detectors"
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/engine"
	"github.com/fraudgraph/engine/internal/graph"
)

func tx(id, from, to string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: at}
}

// Scenario 1: a simple three-account cycle. Cycle detection must find it,
// normalized starting from the lexicographically smallest member, and each
// member (one in, one out) also fires shell.
func TestScenarioThreeCycleDetectedAndShellFires(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx("t1", "A", "B", 1000, base),
		tx("t2", "B", "C", 1000, base.Add(time.Hour)),
		tx("t3", "C", "A", 1000, base.Add(2*time.Hour)),
	}
	g := graph.New(transactions)

	cycles := detectors.DetectCycles(g, 1000)
	for _, acct := range []string{"A", "B", "C"} {
		sigs, ok := cycles[acct]
		if !ok || len(sigs) != 1 {
			t.Fatalf("expected exactly one cycle signal for %s, got %v", acct, sigs)
		}
		if sigs[0].Length != 3 {
			t.Errorf("expected cycle length 3 for %s, got %d", acct, sigs[0].Length)
		}
		if sigs[0].Members[0] != "A" {
			t.Errorf("expected cycle normalized to start at A, got %v", sigs[0].Members)
		}
	}

	shell := detectors.DetectShell(g)
	for _, acct := range []string{"A", "B", "C"} {
		if _, ok := shell[acct]; !ok {
			t.Errorf("expected %s to fire shell (degree 2, one in one out)", acct)
		}
	}
}

// Scenario 2: one sender fanning out to 16 distinct receivers within a
// 48-hour span fires fan_out with a counterparty count of 16, and fires
// none of fan_in, shell, or passthrough.
func TestScenarioFanOutSixteenReceivers(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	for i := 0; i < 16; i++ {
		receiver := "R" + string(rune('A'+i))
		transactions = append(transactions, tx(
			"t"+string(rune('0'+i)), "S", receiver, 200,
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	g := graph.New(transactions)

	fanOut, fanIn := detectors.DetectFanOutFanIn(g)
	sig, ok := fanOut["S"]
	if !ok {
		t.Fatal("expected S to fire fan_out")
	}
	if sig.CounterpartyCount != 16 {
		t.Errorf("expected counterparty count 16, got %d", sig.CounterpartyCount)
	}
	if len(fanIn) != 0 {
		t.Errorf("expected no fan_in signals, got %v", fanIn)
	}

	shell := detectors.DetectShell(g)
	if _, ok := shell["S"]; ok {
		t.Error("S has degree 16, should not fire shell")
	}
	passthrough := detectors.DetectPassthrough(g)
	if len(passthrough) != 0 {
		t.Errorf("expected no passthrough signals, got %v", passthrough)
	}
}

// Scenario 2's fan-out/fan-in boundary: 15 distinct counterparties fires,
// 14 does not.
func TestScenarioFanOutBoundary(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	build := func(receiverCount int) *graph.Graph {
		var transactions []domain.Transaction
		for i := 0; i < receiverCount; i++ {
			transactions = append(transactions, tx(
				"t"+string(rune('0'+i)), "S", "R"+string(rune('A'+i)), 200,
				base.Add(time.Duration(i)*time.Hour),
			))
		}
		return graph.New(transactions)
	}

	fanOut15, _ := detectors.DetectFanOutFanIn(build(15))
	if _, ok := fanOut15["S"]; !ok {
		t.Error("expected fan_out to fire with exactly 15 distinct receivers")
	}

	fanOut14, _ := detectors.DetectFanOutFanIn(build(14))
	if _, ok := fanOut14["S"]; ok {
		t.Error("expected fan_out not to fire with 14 distinct receivers")
	}
}

// Scenario 3: ten outgoing transactions of exactly 9500 trip both
// threshold_avoidance (mean in [9000,9999], full clustering) and
// structuring (9500 is a multiple of 500).
func TestScenarioThresholdAvoidanceAndStructuring(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	for i := 0; i < 10; i++ {
		transactions = append(transactions, tx(
			"t"+string(rune('0'+i)), "A", "R"+string(rune('0'+i)), 9500,
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	g := graph.New(transactions)

	ta := detectors.DetectThresholdAvoidance(g)
	sig, ok := ta["A"]
	if !ok {
		t.Fatal("expected A to fire threshold_avoidance")
	}
	if sig.MeanAmount != 9500 {
		t.Errorf("expected mean amount 9500, got %v", sig.MeanAmount)
	}
	if sig.ClusteringConsistency != 1.0 {
		t.Errorf("expected clustering consistency 1.0, got %v", sig.ClusteringConsistency)
	}

	st := detectors.DetectStructuring(g)
	stSig, ok := st["A"]
	if !ok {
		t.Fatal("expected A to fire structuring")
	}
	if stSig.RoundFraction != 1.0 {
		t.Errorf("expected round fraction 1.0 (9500 is a multiple of 500), got %v", stSig.RoundFraction)
	}
}

// Scenario 3 boundary: mean 9000 and 9999 fire threshold_avoidance; 8999
// and 10000 do not.
func TestScenarioThresholdAvoidanceBoundary(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	fires := func(amount float64) bool {
		g := graph.New([]domain.Transaction{tx("t1", "A", "R", amount, base)})
		_, ok := detectors.DetectThresholdAvoidance(g)["A"]
		return ok
	}

	if !fires(9000) {
		t.Error("expected threshold_avoidance to fire at mean 9000")
	}
	if !fires(9999) {
		t.Error("expected threshold_avoidance to fire at mean 9999")
	}
	if fires(8999) {
		t.Error("expected threshold_avoidance not to fire at mean 8999")
	}
	if fires(10000) {
		t.Error("expected threshold_avoidance not to fire at mean 10000")
	}
}

// Scenario 4: a passthrough chain, X sends to Y, Y forwards most of it to
// Z three hours later. Y fires passthrough with one pair.
func TestScenarioPassthroughChain(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx("t1", "X", "Y", 500, base),
		tx("t2", "Y", "Z", 490, base.Add(3*time.Hour)),
	}
	g := graph.New(transactions)

	pt := detectors.DetectPassthrough(g)
	sig, ok := pt["Y"]
	if !ok {
		t.Fatal("expected Y to fire passthrough")
	}
	if sig.PairCount != 1 {
		t.Errorf("expected exactly one pair, got %d", sig.PairCount)
	}

	if _, ok := pt["X"]; ok {
		t.Error("X has no incoming transaction, should not fire passthrough")
	}
	if _, ok := pt["Z"]; ok {
		t.Error("Z has no outgoing transaction, should not fire passthrough")
	}
}

// Scenario 5: eight senders each sending two ~10000 transactions to one
// receiver within a six-hour span form a Louvain community of size nine
// with a single central beneficiary, high amount consistency, and a
// smurfing score above 0.25 — enough to survive into the report as a
// louvain-origin smurfing ring even though none of its members individually
// cross the suspicious-account classification bar.
func TestScenarioSmurfingRingViaLouvain(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	n := 0
	for s := 0; s < 8; s++ {
		sender := "sender" + string(rune('0'+s))
		for k := 0; k < 2; k++ {
			transactions = append(transactions, tx(
				"t"+string(rune('0'+n)), sender, "R", 10000,
				base.Add(time.Duration(n)*20*time.Minute),
			))
			n++
		}
	}

	result, err := engine.New(domain.DefaultConfig()).Analyze(context.Background(), transactions)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var smurfRing *domain.ReportRing
	for i := range result.Report.FraudRings {
		if result.Report.FraudRings[i].DetectionMethod == domain.DetectionMethodLouvain {
			smurfRing = &result.Report.FraudRings[i]
			break
		}
	}
	if smurfRing == nil {
		t.Fatalf("expected a louvain-origin ring, got rings: %+v", result.Report.FraudRings)
	}
	if smurfRing.PatternType != domain.RingPatternSmurfing {
		t.Errorf("expected pattern_type smurfing, got %s", smurfRing.PatternType)
	}
	if len(smurfRing.MemberAccounts) != 9 {
		t.Errorf("expected 9 ring members, got %d: %v", len(smurfRing.MemberAccounts), smurfRing.MemberAccounts)
	}
	if smurfRing.Density == nil || *smurfRing.Density <= 0.2 {
		t.Errorf("expected density > 0.2, got %v", smurfRing.Density)
	}
	if len(smurfRing.CentralBeneficiaries) != 1 || smurfRing.CentralBeneficiaries[0] != "R" {
		t.Errorf("expected R as sole central beneficiary, got %v", smurfRing.CentralBeneficiaries)
	}
}

// Scenario 6: a merchant with 50 incoming transactions from 45 distinct
// senders at a low mean amount fires fan_in internally, but the merchant
// legitimacy penalty pulls the score down enough that the account never
// appears in the report's suspicious accounts.
func TestScenarioLegitimateMerchantShielded(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	senderCount := 45
	txCount := 50
	for i := 0; i < txCount; i++ {
		sender := "sender" + itoa(i%senderCount)
		transactions = append(transactions, tx(
			"t"+itoa(i), sender, "M", 42,
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	g := graph.New(transactions)

	_, fanIn := detectors.DetectFanOutFanIn(g)
	sig, ok := fanIn["M"]
	if !ok {
		t.Fatal("expected M to fire fan_in internally")
	}
	if sig.CounterpartyCount != senderCount {
		t.Errorf("expected %d distinct senders, got %d", senderCount, sig.CounterpartyCount)
	}

	result, err := engine.New(domain.DefaultConfig()).Analyze(context.Background(), transactions)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for _, acct := range result.Report.SuspiciousAccounts {
		if acct.AccountID == "M" {
			t.Errorf("expected M to be shielded by the merchant penalty, but it was flagged with score %v", acct.SuspicionScore)
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
