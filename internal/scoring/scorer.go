package scoring

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Score computes the final suspicion score and fired-pattern list for every
// account with at least one signal, applies legitimacy penalties, clamps
// to [0,100], and returns only the accounts the classification rule in
// spec §4.5 calls suspicious. Scores are rounded to one decimal here;
// sorting is the Report Builder's job (spec §4.7), not this stage's.
func Score(g *graph.Graph, sig *domain.Signals) []domain.SuspiciousAccount {
	var results []domain.SuspiciousAccount

	for _, acct := range g.AllAccounts() {
		score, patterns, cycleFired := accumulate(sig, acct)
		if len(patterns) == 0 {
			continue
		}

		score -= legitimacyPenalty(g, acct)
		score = clamp(score, 0, 100)

		if !isSuspicious(score, len(patterns), cycleFired) {
			continue
		}

		results = append(results, domain.SuspiciousAccount{
			AccountID:        acct,
			SuspicionScore:   roundToOneDecimal(score),
			DetectedPatterns: patterns,
		})
	}

	return results
}

// accumulate walks every detector's signal map for one account, in the
// fixed order spec §4.3 lists them, building the patterns-fired list in
// that same insertion order (spec §3: "list of fired pattern labels,
// insertion order").
func accumulate(sig *domain.Signals, acct string) (score float64, patterns []string, cycleFired bool) {
	if cs, ok := sig.Cycles[acct]; ok && len(cs) > 0 {
		score += cycleContribution(cs)
		patterns = append(patterns, domain.PatternCycle)
		cycleFired = true
	}
	if fo, ok := sig.FanOut[acct]; ok {
		score += fanContribution(fo.CounterpartyCount)
		patterns = append(patterns, domain.PatternFanOut)
	}
	if fi, ok := sig.FanIn[acct]; ok {
		score += fanContribution(fi.CounterpartyCount)
		patterns = append(patterns, domain.PatternFanIn)
	}
	if _, ok := sig.Shell[acct]; ok {
		score += 12
		patterns = append(patterns, domain.PatternShellAccount)
	}
	if p, ok := sig.Passthrough[acct]; ok {
		score += passthroughContribution(p.PairCount)
		patterns = append(patterns, domain.PatternPassthrough)
	}
	if st, ok := sig.Structuring[acct]; ok {
		score += structuringContribution(st.RoundFraction)
		patterns = append(patterns, domain.PatternStructuring)
	}
	if ta, ok := sig.ThresholdAvoidance[acct]; ok {
		score += thresholdAvoidanceContribution(ta.ClusteringConsistency)
		patterns = append(patterns, domain.PatternThresholdAvoidance)
	}
	if v, ok := sig.Velocity[acct]; ok {
		score += velocityContribution(v.PeakRatePerHour)
		patterns = append(patterns, domain.PatternVelocityAnomaly)
	}
	if aa, ok := sig.AmountAnomaly[acct]; ok {
		score += amountAnomalyContribution(aa.OutlierFraction)
		patterns = append(patterns, domain.PatternAmountAnomaly)
	}
	if ut, ok := sig.UnusualTiming[acct]; ok {
		score += unusualTimingContribution(ut.NightFraction, ut.WeekendFraction)
		patterns = append(patterns, domain.PatternUnusualTiming)
	}
	if b, ok := sig.Burst[acct]; ok {
		score += burstContribution(b.MaxBurstLength)
		patterns = append(patterns, domain.PatternBurstActivity)
	}
	if d, ok := sig.Dormancy[acct]; ok {
		score += dormancyContribution(d.GapDays, d.EventsAfter)
		patterns = append(patterns, domain.PatternDormancyReactivation)
	}
	if as, ok := sig.AmountSplitting[acct]; ok {
		score += amountSplittingContribution(as.GroupSize)
		patterns = append(patterns, domain.PatternAmountSplitting)
	}
	if fa, ok := sig.FrequencyAnomaly[acct]; ok {
		score += frequencyAnomalyContribution(fa.TxPerDay)
		patterns = append(patterns, domain.PatternFrequencyAnomaly)
	}
	if ni, ok := sig.NetworkInfluence[acct]; ok {
		score += networkInfluenceContribution(ni.NormalizedScore)
		patterns = append(patterns, domain.PatternNetworkInfluence)
	}
	if rt, ok := sig.RoundTrip[acct]; ok {
		score += roundTripContribution(rt.Count)
		patterns = append(patterns, domain.PatternRoundTrip)
	}
	if ly, ok := sig.Layering[acct]; ok {
		score += layeringContribution(ly.MaxDepth, ly.ChainComplexity)
		patterns = append(patterns, domain.PatternLayering)
	}
	if ld, ok := sig.LowDiversity[acct]; ok {
		score += lowDiversityContribution(ld.DiversityRatio, ld.TopCounterpartyShare)
		patterns = append(patterns, domain.PatternLowDiversity)
	}
	if ap, ok := sig.AmountProgression[acct]; ok {
		score += amountProgressionContribution(ap.Ratio)
		patterns = append(patterns, domain.PatternAmountProgression)
	}
	if tc, ok := sig.TemporalClustering[acct]; ok {
		score += temporalClusteringContribution(tc.SingleHour, tc.Concentration)
		patterns = append(patterns, domain.PatternTemporalClustering)
	}
	if ch, ok := sig.MoneyLaunderingChain[acct]; ok {
		score += chainContribution(ch.LongestChain, ch.ChainCount)
		patterns = append(patterns, domain.PatternMoneyLaunderingChain)
	}
	if cb, ok := sig.CoordinatedBehavior[acct]; ok {
		score += coordinatedContribution(cb.CorrelatedPartners)
		patterns = append(patterns, domain.PatternCoordinatedBehavior)
	}
	if sc, ok := sig.SmurfingClusters[acct]; ok {
		score += smurfingClusterContribution(sc.ClusterCount)
		patterns = append(patterns, domain.PatternSmurfingPattern)
	}
	if wt, ok := sig.WashTrading[acct]; ok {
		score += washTradingContribution(wt.MatchCount)
		patterns = append(patterns, domain.PatternWashTrading)
	}

	if idx, ok := sig.LouvainMember[acct]; ok && idx < len(sig.Communities) {
		community := sig.Communities[idx]
		score += louvainBonus(community, isCentralBeneficiary(community, acct))
		patterns = append(patterns, domain.PatternLouvainSmurfingRing, domain.LouvainPatternLabel(community.PatternClass))
	}

	for _, o := range sig.Overlay[acct] {
		score += o.Delta
		patterns = append(patterns, o.Name)
	}

	return score, patterns, cycleFired
}
