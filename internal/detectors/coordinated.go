package detectors

import (
	"sort"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
	"github.com/fraudgraph/engine/internal/stats"
)

const (
	coordinatedMinDegree  = 20
	coordinatedTopN       = 100
	coordinatedCompareN   = 20
	coordinatedCorrelate  = 0.7
	coordinatedTolerance  = time.Hour
	coordinatedMinPartner = 2
)

// DetectCoordinatedBehavior restricts to accounts with combined degree
// ≥20, ranks them by activity, and for each of the top 100 compares its
// timeline against the next 20 in that ranking. Two timelines correlate
// when at least 70% of the shorter one's events have a counterpart within
// ±1 hour in the other; an account fires once it has 2 correlated
// partners (spec §4.3.21).
func DetectCoordinatedBehavior(g *graph.Graph, st *stats.Cache) map[string]domain.CoordinatedSignal {
	out := make(map[string]domain.CoordinatedSignal)

	var candidates []string
	for _, a := range g.AllAccounts() {
		if g.Degree(a) >= coordinatedMinDegree {
			candidates = append(candidates, a)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := g.Degree(candidates[i]), g.Degree(candidates[j])
		if di != dj {
			return di > dj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > coordinatedTopN {
		candidates = candidates[:coordinatedTopN]
	}

	timelines := make(map[string][]time.Time, len(candidates))
	for _, a := range candidates {
		merged := mergedSortedByTime(g.OutgoingSorted(a), g.IncomingSorted(a))
		ts := make([]time.Time, len(merged))
		for i, t := range merged {
			ts[i] = t.Timestamp
		}
		timelines[a] = ts
	}

	for i, a := range candidates {
		partners := 0
		end := i + 1 + coordinatedCompareN
		if end > len(candidates) {
			end = len(candidates)
		}
		for j := i + 1; j < end; j++ {
			if timelinesCorrelated(timelines[a], timelines[candidates[j]]) {
				partners++
			}
		}
		if partners >= coordinatedMinPartner {
			out[a] = domain.CoordinatedSignal{CorrelatedPartners: partners}
		}
	}
	return out
}

func timelinesCorrelated(a, b []time.Time) bool {
	shorter, longer := a, b
	if len(b) < len(a) {
		shorter, longer = b, a
	}
	if len(shorter) == 0 {
		return false
	}

	matched := 0
	for _, t := range shorter {
		if hasNearby(longer, t, coordinatedTolerance) {
			matched++
		}
	}
	return float64(matched)/float64(len(shorter)) >= coordinatedCorrelate
}

// hasNearby reports whether sorted contains a timestamp within tolerance
// of t. sorted must already be time-ascending.
func hasNearby(sorted []time.Time, t time.Time, tolerance time.Duration) bool {
	lower := t.Add(-tolerance)
	upper := t.Add(tolerance)
	idx := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Before(lower) })
	return idx < len(sorted) && !sorted[idx].After(upper)
}
