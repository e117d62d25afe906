package domain

// Config holds the engine's enumerated configuration knobs (spec §6).
// This is the only configuration the core analysis engine itself reads;
// ambient concerns (logging, tracing, archiving) are layered on top by
// internal/config and never reach the engine.
type Config struct {
	// MaxCycles upper-bounds enumerated cycles (spec §4.3.1). Default 1000;
	// spec's own cycle detector stops earlier, at 100, as a hard safeguard
	// regardless of this value.
	MaxCycles int

	// CentralitySampleSize caps the account set used for network-influence
	// centrality computation (spec §4.3.14). Default 500.
	CentralitySampleSize int

	// EnableDeepChainAnalysis toggles the opt-in money-laundering chain
	// detector (spec §4.3.20). Default false.
	EnableDeepChainAnalysis bool

	// ProgressCallback receives stage milestones if non-nil (spec §4.8).
	ProgressCallback ProgressCallback

	// OverlayRules are optional CEL-expressed account overlays (SPEC_FULL
	// §4); nil/empty disables the overlay stage entirely.
	OverlayRules []OverlayRule
}

// OverlayRule is one CEL-expressed per-account overlay predicate.
type OverlayRule struct {
	Name       string
	Expression string
	// Delta is the score contribution when Expression evaluates truthy.
	// Negative values are legitimacy penalties, positive values are
	// additional suspicion signals.
	Delta float64
}

// DefaultConfig returns the engine configuration used when a caller passes
// none explicitly.
func DefaultConfig() Config {
	return Config{
		MaxCycles:               1000,
		CentralitySampleSize:    500,
		EnableDeepChainAnalysis: false,
	}
}
