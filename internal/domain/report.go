package domain

// Report is the stable outbound shape consumed by the out-of-scope HTTP
// layer (spec §6). JSON tags match the wire contract exactly.
type Report struct {
	SuspiciousAccounts []ReportAccount `json:"suspicious_accounts"`
	FraudRings         []ReportRing    `json:"fraud_rings"`
	Summary            Summary         `json:"summary"`
}

// ReportAccount is one entry of Report.SuspiciousAccounts.
type ReportAccount struct {
	AccountID       string   `json:"account_id"`
	SuspicionScore  float64  `json:"suspicion_score"`
	DetectedPatterns []string `json:"detected_patterns"`
	RingID          *string  `json:"ring_id"`
}

// ReportRing is one entry of Report.FraudRings.
type ReportRing struct {
	RingID              string    `json:"ring_id"`
	MemberAccounts      []string  `json:"member_accounts"`
	PatternType         string    `json:"pattern_type"`
	RiskScore           float64   `json:"risk_score"`
	DetectionMethod     string    `json:"detection_method,omitempty"`
	Density             *float64  `json:"density,omitempty"`
	CentralBeneficiaries []string `json:"central_beneficiaries,omitempty"`
}

// Summary is the aggregate block of the report (spec §4.7, §6).
type Summary struct {
	TotalAccountsAnalyzed        int     `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged    int     `json:"suspicious_accounts_flagged"`
	FraudRingsDetected           int     `json:"fraud_rings_detected"`
	ProcessingTimeSeconds        float64 `json:"processing_time_seconds"`
	CyclesDetected               int     `json:"cycles_detected"`
	LouvainSmurfingRingsDetected int     `json:"louvain_smurfing_rings_detected"`
	PatternsAnalyzed             int     `json:"patterns_analyzed"`
}

// DetectorCount is the constant count of detectors executed (spec §4.7's
// "constant count of detectors executed"): the 23 pattern detectors of
// spec §4.3, independent of whether the opt-in chain analyzer ran.
const DetectorCount = 23
