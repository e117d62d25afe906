package domain

// FraudRing is a group of suspicious accounts assembled from connectivity
// and Louvain evidence (spec §4.6).
type FraudRing struct {
	RingID              string
	MemberAccounts      []string // sorted ascending, no duplicates
	PatternType         string   // cycle | smurfing | shell_chain | hybrid
	RiskScore           float64  // [0,100], one decimal
	DetectionMethod     string   // "connectivity" | "louvain"
	Density             float64  // only meaningful for louvain-origin rings
	CentralBeneficiaries []string
}

// Ring pattern type constants (spec §4.6).
const (
	RingPatternCycle      = "cycle"
	RingPatternSmurfing   = "smurfing"
	RingPatternShellChain = "shell_chain"
	RingPatternHybrid     = "hybrid"
)

// Detection method constants (spec §4.6).
const (
	DetectionMethodConnectivity = "connectivity"
	DetectionMethodLouvain      = "louvain"
)
