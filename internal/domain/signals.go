package domain

// Signals is the complete set of per-account payloads emitted by the
// detector family (spec §4.3) plus the Louvain community detector (§4.4).
// One field per detector; absence of an account key in a field's map means
// that detector did not fire for the account — the tagged-variant scheme
// described in spec §9 ("dynamic per-detector payloads become tagged
// variants"). The suspicion scorer dispatches on these field names rather
// than on a runtime type tag.
type Signals struct {
	Cycles               map[string][]CycleSignal
	FanOut               map[string]FanSignal
	FanIn                map[string]FanSignal
	Shell                map[string]ShellSignal
	Passthrough          map[string]PassthroughSignal
	Structuring          map[string]StructuringSignal
	ThresholdAvoidance   map[string]ThresholdAvoidanceSignal
	Velocity             map[string]VelocitySignal
	AmountAnomaly        map[string]AmountAnomalySignal
	UnusualTiming        map[string]UnusualTimingSignal
	Burst                map[string]BurstSignal
	Dormancy             map[string]DormancySignal
	AmountSplitting      map[string]AmountSplittingSignal
	FrequencyAnomaly     map[string]FrequencyAnomalySignal
	NetworkInfluence     map[string]NetworkInfluenceSignal
	RoundTrip            map[string]RoundTripSignal
	Layering             map[string]LayeringSignal
	LowDiversity         map[string]LowDiversitySignal
	AmountProgression    map[string]AmountProgressionSignal
	TemporalClustering   map[string]TemporalClusteringSignal
	MoneyLaunderingChain map[string]ChainSignal
	CoordinatedBehavior  map[string]CoordinatedSignal
	SmurfingClusters     map[string]SmurfingClusterSignal
	WashTrading          map[string]WashTradingSignal
	Overlay              map[string][]OverlaySignal

	// Communities holds the Louvain output (spec §4.4); it is not keyed by
	// account because a community spans many accounts. LouvainMember maps
	// an account to the community it was assigned to, for O(1) lookup by
	// the scorer and ring assembler.
	Communities    []Community
	LouvainMember  map[string]int // account -> index into Communities
}

// NewSignals returns a Signals value with every map initialized empty, so
// detectors can be skipped (e.g. the opt-in chain analyzer) without the
// scorer needing nil checks on every field.
func NewSignals() *Signals {
	return &Signals{
		Cycles:               make(map[string][]CycleSignal),
		FanOut:               make(map[string]FanSignal),
		FanIn:                make(map[string]FanSignal),
		Shell:                make(map[string]ShellSignal),
		Passthrough:          make(map[string]PassthroughSignal),
		Structuring:          make(map[string]StructuringSignal),
		ThresholdAvoidance:   make(map[string]ThresholdAvoidanceSignal),
		Velocity:             make(map[string]VelocitySignal),
		AmountAnomaly:        make(map[string]AmountAnomalySignal),
		UnusualTiming:        make(map[string]UnusualTimingSignal),
		Burst:                make(map[string]BurstSignal),
		Dormancy:             make(map[string]DormancySignal),
		AmountSplitting:      make(map[string]AmountSplittingSignal),
		FrequencyAnomaly:     make(map[string]FrequencyAnomalySignal),
		NetworkInfluence:     make(map[string]NetworkInfluenceSignal),
		RoundTrip:            make(map[string]RoundTripSignal),
		Layering:             make(map[string]LayeringSignal),
		LowDiversity:         make(map[string]LowDiversitySignal),
		AmountProgression:    make(map[string]AmountProgressionSignal),
		TemporalClustering:   make(map[string]TemporalClusteringSignal),
		MoneyLaunderingChain: make(map[string]ChainSignal),
		CoordinatedBehavior:  make(map[string]CoordinatedSignal),
		SmurfingClusters:     make(map[string]SmurfingClusterSignal),
		WashTrading:          make(map[string]WashTradingSignal),
		Overlay:              make(map[string][]OverlaySignal),
		LouvainMember:        make(map[string]int),
	}
}

// CycleSignal records one simple directed cycle an account participates in.
type CycleSignal struct {
	Members []string // normalized rotation, smallest account id first
	Length  int
}

// FanSignal is shared by fan-out and fan-in (spec §4.3.2): the field means
// "distinct receivers" for fan-out and "distinct senders" for fan-in.
type FanSignal struct {
	CounterpartyCount int
	WindowStart       int64 // unix millis
	WindowEnd         int64
}

// ShellSignal fires when total degree is in [1,3] with at least one
// incoming and one outgoing transaction (spec §4.3.3).
type ShellSignal struct {
	InDegree  int
	OutDegree int
}

// PassthroughSignal counts matched incoming/outgoing pairs within the
// 6-hour relay window (spec §4.3.4).
type PassthroughSignal struct {
	PairCount int
}

// StructuringSignal reports the fraction of round-number transactions
// (spec §4.3.5).
type StructuringSignal struct {
	RoundFraction float64
}

// ThresholdAvoidanceSignal reports mean amount and the clustering fraction
// of transactions in [9000, 9999] (spec §4.3.6).
type ThresholdAvoidanceSignal struct {
	MeanAmount           float64
	ClusteringConsistency float64
}

// VelocitySignal is the peak observed transactions-per-hour rate across the
// four sliding windows (spec §4.3.7).
type VelocitySignal struct {
	PeakRatePerHour float64
}

// AmountAnomalySignal is the fraction of an account's transactions outside
// the global IQR fences (spec §4.3.8).
type AmountAnomalySignal struct {
	OutlierFraction float64
}

// UnusualTimingSignal carries the night-hour and weekend fractions
// (spec §4.3.9).
type UnusualTimingSignal struct {
	NightFraction   float64
	WeekendFraction float64
}

// BurstSignal is the longest run of below-threshold inter-arrival gaps
// (spec §4.3.10).
type BurstSignal struct {
	MaxBurstLength int
}

// DormancySignal is the longest inter-event gap and how many events follow
// it (spec §4.3.11).
type DormancySignal struct {
	GapDays     float64
	EventsAfter int
}

// AmountSplittingSignal retains the largest window of near-equal amounts
// (spec §4.3.12).
type AmountSplittingSignal struct {
	GroupSize int
	MeanAmount float64
}

// FrequencyAnomalySignal is mean transactions/day over the observed span
// (spec §4.3.13).
type FrequencyAnomalySignal struct {
	TxPerDay float64
}

// NetworkInfluenceSignal is the max-normalized PageRank-style score
// (spec §4.3.14).
type NetworkInfluenceSignal struct {
	NormalizedScore float64
}

// RoundTripSignal counts A->B->A occurrences within 48h (spec §4.3.15).
type RoundTripSignal struct {
	Count int
}

// LayeringSignal is the max observed downstream BFS depth (spec §4.3.16).
type LayeringSignal struct {
	MaxDepth         int
	ChainComplexity  int // distinct downstream accounts visited
}

// LowDiversitySignal is unique-counterparty ratio and top-counterparty
// concentration (spec §4.3.17).
type LowDiversitySignal struct {
	DiversityRatio        float64
	TopCounterpartyShare  float64
}

// AmountProgressionSignal reports which direction dominates and by how
// much (spec §4.3.18).
type AmountProgressionSignal struct {
	Label              string // "increasing" or "decreasing"
	Ratio              float64
}

// TemporalClusteringSignal describes the peak-hour concentration of an
// account's own activity (spec §4.3.19) — distinct from the Louvain
// community-level temporal clustering in spec §4.4.
type TemporalClusteringSignal struct {
	SingleHour      bool
	Concentration   float64
}

// ChainSignal is the longest money-laundering chain found and how many
// qualifying chains exist in total (spec §4.3.20, opt-in).
type ChainSignal struct {
	LongestChain int
	ChainCount   int
}

// CoordinatedSignal counts correlated-timeline partners (spec §4.3.21).
type CoordinatedSignal struct {
	CorrelatedPartners int
}

// SmurfingClusterSignal counts qualifying amount-similarity clusters
// (spec §4.3.22).
type SmurfingClusterSignal struct {
	ClusterCount int
}

// WashTradingSignal counts matched bidirectional pairs (spec §4.3.23).
type WashTradingSignal struct {
	MatchCount int
}

// OverlaySignal is produced by the optional CEL-based overlay (SPEC_FULL
// §4), not by spec.md itself. Sign determines whether it contributes to the
// score (positive) or is a legitimacy penalty (negative).
type OverlaySignal struct {
	Name  string
	Delta float64
}
