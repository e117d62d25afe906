package scoring

import (
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

func tx(id, from, to string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: at}
}

func TestCycleContributionBands(t *testing.T) {
	cases := []struct {
		length int
		want   float64
	}{
		{3, 35},
		{4, 28},
		{5, 22},
	}
	for _, c := range cases {
		got := cycleContribution([]domain.CycleSignal{{Length: c.length}})
		if got != c.want {
			t.Errorf("cycleContribution(length=%d) = %v, want %v", c.length, got, c.want)
		}
	}
}

func TestCycleContributionUsesSmallestLength(t *testing.T) {
	got := cycleContribution([]domain.CycleSignal{{Length: 5}, {Length: 3}, {Length: 4}})
	if got != 35 {
		t.Errorf("expected the length-3 band to win, got %v", got)
	}
}

func TestFanContributionCapsAtEighteen(t *testing.T) {
	if got := fanContribution(16); got != 12 {
		t.Errorf("fanContribution(16) = %v, want 12 (12 + floor(0.6*1))", got)
	}
	if got := fanContribution(45); got != 18 {
		t.Errorf("fanContribution(45) = %v, want capped at 18", got)
	}
}

func TestThresholdAvoidanceContributionBands(t *testing.T) {
	if got := thresholdAvoidanceContribution(1.0); got != 8 {
		t.Errorf("expected 8 at clustering 1.0, got %v", got)
	}
	if got := thresholdAvoidanceContribution(0.65); got != 6 {
		t.Errorf("expected 6 at clustering 0.65, got %v", got)
	}
	if got := thresholdAvoidanceContribution(0.1); got != 5 {
		t.Errorf("expected 5 at low clustering, got %v", got)
	}
}

func TestStructuringContributionBands(t *testing.T) {
	if got := structuringContribution(1.0); got != 8 {
		t.Errorf("expected 8 at round fraction 1.0, got %v", got)
	}
	if got := structuringContribution(0.75); got != 5 {
		t.Errorf("expected 5 below the 0.80 band, got %v", got)
	}
}

func TestPassthroughContributionBands(t *testing.T) {
	if got := passthroughContribution(1); got != 4 {
		t.Errorf("expected 4 for a single pair, got %v", got)
	}
	if got := passthroughContribution(10); got != 8 {
		t.Errorf("expected 8 at 10 pairs, got %v", got)
	}
}

func TestMerchantPenaltyRequiresVolumeAndLowMean(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	for i := 0; i < 50; i++ {
		sender := "s" + string(rune('a'+(i%45)))
		transactions = append(transactions, tx("t"+string(rune('0'+i%10)), sender, "M", 42, base.Add(time.Duration(i)*time.Hour)))
	}
	g := graph.New(transactions)

	penalty := merchantPenalty(g, "M")
	if penalty != 20 {
		t.Errorf("expected the full -20 merchant penalty (high diversity, low mean), got %v", penalty)
	}
}

func TestMerchantPenaltyZeroBelowVolume(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "a", "M", 42, base),
		tx("t2", "b", "M", 42, base.Add(time.Hour)),
	})

	if got := merchantPenalty(g, "M"); got != 0 {
		t.Errorf("expected no merchant penalty under 20 incoming transactions, got %v", got)
	}
}

func TestScoreOmitsAccountBelowClassificationBar(t *testing.T) {
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 1000, time.Now()),
	})
	sig := domain.NewSignals()
	sig.Cycles["A"] = []domain.CycleSignal{{Members: []string{"A", "B", "C"}, Length: 3}}

	results := Score(g, sig)
	for _, r := range results {
		if r.AccountID == "A" {
			t.Errorf("expected A (score 35, one pattern) to fall below the classification bar, got %+v", r)
		}
	}
}

func TestScoreClassifiesHighScoreAlone(t *testing.T) {
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 1000, time.Now()),
	})
	sig := domain.NewSignals()
	// cycle(35) + chain(15) + coordinated(10) + wash(10) + smurfing clusters(10) = 80.
	sig.Cycles["A"] = []domain.CycleSignal{{Members: []string{"A", "B", "C"}, Length: 3}}
	sig.MoneyLaunderingChain["A"] = domain.ChainSignal{LongestChain: 7, ChainCount: 10}
	sig.CoordinatedBehavior["A"] = domain.CoordinatedSignal{CorrelatedPartners: 5}
	sig.WashTrading["A"] = domain.WashTradingSignal{MatchCount: 10}
	sig.SmurfingClusters["A"] = domain.SmurfingClusterSignal{ClusterCount: 5}

	results := Score(g, sig)
	found := false
	for _, r := range results {
		if r.AccountID == "A" {
			found = true
			if r.SuspicionScore < 80 {
				t.Errorf("expected score >= 80 (cycle 35 + chain 15 + coordinated 10 + wash 10 + smurfing 10 = 80), got %v", r.SuspicionScore)
			}
		}
	}
	if !found {
		t.Fatal("expected A to be classified suspicious")
	}
}
