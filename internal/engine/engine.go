// Package engine orchestrates the full analysis pipeline (spec §5): graph
// construction, statistics, the detector battery, community detection,
// scoring, ring assembly, and report building, reporting progress at each
// stage boundary.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fraudgraph/engine/internal/community"
	"github.com/fraudgraph/engine/internal/detectors"
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
	"github.com/fraudgraph/engine/internal/metrics"
	"github.com/fraudgraph/engine/internal/overlay"
	"github.com/fraudgraph/engine/internal/report"
	"github.com/fraudgraph/engine/internal/rings"
	"github.com/fraudgraph/engine/internal/scoring"
	"github.com/fraudgraph/engine/internal/stats"
	"github.com/fraudgraph/engine/internal/telemetry"
)

// Engine runs one analysis pipeline per Analyze call. It holds no
// per-run state between calls — every field is local to Analyze — so a
// single Engine value is safe to reuse (or call concurrently) across
// independent transaction batches.
type Engine struct {
	cfg domain.Config
}

// New builds an Engine from the given configuration.
func New(cfg domain.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Result bundles the outbound report with the run identifier the caller
// can use to correlate logs, archived rows, and progress events.
type Result struct {
	RunID  string
	Report domain.Report
}

// Analyze runs the full pipeline against a transaction batch (spec §5).
// The seven stages in domain.Stage fire in order; ctx cancellation is
// only honored between stages, since no single stage is externally
// interruptible mid-computation.
func (e *Engine) Analyze(ctx context.Context, transactions []domain.Transaction) (Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := slog.With("run_id", runID, "transaction_count", len(transactions))
	log.Info("analysis run started")
	metrics.RunsStarted.Inc()
	metrics.TransactionsAnalyzed.Add(float64(len(transactions)))

	ctx, endRunSpan := telemetry.StartRun(ctx, runID, len(transactions))
	defer endRunSpan()

	report0 := Result{RunID: runID}

	e.report(domain.StageGraphBuild, "building transaction graph")
	g := withStageSpan(ctx, domain.StageGraphBuild, func() *graph.Graph { return graph.New(transactions) })
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	e.report(domain.StageStatistics, "computing global statistics")
	st := withStageSpan(ctx, domain.StageStatistics, func() *stats.Cache { return stats.Compute(g, transactions) })
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	e.report(domain.StageDetectors, "running pattern detectors")
	sig := withStageSpan(ctx, domain.StageDetectors, func() *domain.Signals { return e.runDetectors(g, st) })
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	e.report(domain.StageCommunity, "detecting communities")
	withVoidStageSpan(ctx, domain.StageCommunity, func() {
		sig.Communities = community.Detect(g)
		sig.LouvainMember = make(map[string]int, len(sig.Communities))
		for i, c := range sig.Communities {
			for _, m := range c.Members {
				sig.LouvainMember[m] = i
			}
		}
	})
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	if len(e.cfg.OverlayRules) > 0 {
		overlayEngine, err := overlay.NewEngine(e.cfg.OverlayRules)
		if err != nil {
			log.Warn("overlay engine failed to build, skipping", "error", err)
		} else {
			sig.Overlay = overlayEngine.Evaluate(g)
		}
	}

	e.report(domain.StageScoring, "scoring suspicious accounts")
	suspicious := withStageSpan(ctx, domain.StageScoring, func() []domain.SuspiciousAccount { return scoring.Score(g, sig) })
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	e.report(domain.StageRingAssembly, "assembling fraud rings")
	fraudRings := withStageSpan(ctx, domain.StageRingAssembly, func() []domain.FraudRing { return rings.Assemble(g, suspicious, sig.Communities) })
	if err := ctx.Err(); err != nil {
		metrics.RunsFailed.Inc()
		return report0, err
	}

	e.report(domain.StageReportBuild, "building report")
	rpt := withStageSpan(ctx, domain.StageReportBuild, func() domain.Report {
		return report.Build(g, suspicious, fraudRings, sig, time.Since(start))
	})

	elapsed := time.Since(start)
	log.Info("analysis run finished",
		"suspicious_accounts", len(suspicious),
		"fraud_rings", len(fraudRings),
		"elapsed", elapsed,
	)

	metrics.RunsCompleted.Inc()
	metrics.SuspiciousAccountsFlagged.Add(float64(len(suspicious)))
	metrics.FraudRingsDetected.Add(float64(len(fraudRings)))
	metrics.RunDuration.Observe(elapsed.Seconds())

	return Result{RunID: runID, Report: rpt}, nil
}

func (e *Engine) report(stage domain.Stage, message string) {
	if e.cfg.ProgressCallback == nil {
		return
	}
	e.cfg.ProgressCallback(stage, message, domain.StagePercent[stage])
}

// withStageSpan runs fn inside an OpenTelemetry span for stage and records
// its wall-clock duration to the stage-duration histogram. A free function
// rather than a method because Go methods cannot carry their own type
// parameters.
func withStageSpan[T any](ctx context.Context, stage domain.Stage, fn func() T) T {
	_, end := telemetry.StartStage(ctx, string(stage))
	defer end()

	start := time.Now()
	result := fn()
	metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	return result
}

// withVoidStageSpan is withStageSpan for side-effecting stages that
// mutate shared state (community detection populates fields on an
// already-built Signals) rather than returning a fresh value.
func withVoidStageSpan(ctx context.Context, stage domain.Stage, fn func()) {
	_, end := telemetry.StartStage(ctx, string(stage))
	defer end()

	start := time.Now()
	fn()
	metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

// runDetectors fans the 23 pattern detectors (plus the opt-in chain
// analyzer) out across goroutines, one per detector group, and joins
// before assembling Signals. Every detector is a pure function of the
// (read-only, by this point) graph and stats cache, so there is no
// shared mutable state to guard beyond each goroutine's own result slot —
// the pattern osprey's worker pool uses a semaphore for is unnecessary
// here since the detector count is small and fixed, not an unbounded
// stream of incoming work.
func (e *Engine) runDetectors(g *graph.Graph, st *stats.Cache) *domain.Signals {
	sig := domain.NewSignals()

	var (
		cycles                                  map[string][]domain.CycleSignal
		fanOut, fanIn                            map[string]domain.FanSignal
		shell                                    map[string]domain.ShellSignal
		passthrough                              map[string]domain.PassthroughSignal
		structuring                              map[string]domain.StructuringSignal
		thresholdAvoidance                       map[string]domain.ThresholdAvoidanceSignal
		velocity                                 map[string]domain.VelocitySignal
		amountAnomaly                            map[string]domain.AmountAnomalySignal
		unusualTiming                            map[string]domain.UnusualTimingSignal
		burst                                    map[string]domain.BurstSignal
		dormancy                                 map[string]domain.DormancySignal
		amountSplitting                          map[string]domain.AmountSplittingSignal
		frequencyAnomaly                         map[string]domain.FrequencyAnomalySignal
		networkInfluence                         map[string]domain.NetworkInfluenceSignal
		roundTrip                                map[string]domain.RoundTripSignal
		layering                                 map[string]domain.LayeringSignal
		lowDiversity                             map[string]domain.LowDiversitySignal
		amountProgression                        map[string]domain.AmountProgressionSignal
		temporalClustering                       map[string]domain.TemporalClusteringSignal
		chains                                   map[string]domain.ChainSignal
		coordinated                              map[string]domain.CoordinatedSignal
		smurfing                                 map[string]domain.SmurfingClusterSignal
		wash                                     map[string]domain.WashTradingSignal
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { cycles = detectors.DetectCycles(g, e.cfg.MaxCycles) })
	run(func() { fanOut, fanIn = detectors.DetectFanOutFanIn(g) })
	run(func() { shell = detectors.DetectShell(g) })
	run(func() { passthrough = detectors.DetectPassthrough(g) })
	run(func() { structuring = detectors.DetectStructuring(g) })
	run(func() { thresholdAvoidance = detectors.DetectThresholdAvoidance(g) })
	run(func() { velocity = detectors.DetectVelocity(g) })
	run(func() { amountAnomaly = detectors.DetectAmountAnomaly(g, st) })
	run(func() { unusualTiming = detectors.DetectUnusualTiming(g) })
	run(func() { burst = detectors.DetectBurst(g) })
	run(func() { dormancy = detectors.DetectDormancy(g) })
	run(func() { amountSplitting = detectors.DetectAmountSplitting(g) })
	run(func() { frequencyAnomaly = detectors.DetectFrequencyAnomaly(g, st) })
	run(func() { networkInfluence = detectors.DetectNetworkInfluence(g, e.cfg.CentralitySampleSize) })
	run(func() { roundTrip = detectors.DetectRoundTrip(g) })
	run(func() { layering = detectors.DetectLayering(g) })
	run(func() { lowDiversity = detectors.DetectCounterpartyDiversity(g) })
	run(func() { amountProgression = detectors.DetectAmountProgression(g) })
	run(func() { temporalClustering = detectors.DetectTemporalClustering(g) })
	run(func() { coordinated = detectors.DetectCoordinatedBehavior(g, st) })
	run(func() { smurfing = detectors.DetectSmurfingClusters(g) })
	run(func() { wash = detectors.DetectWashTrading(g) })
	if e.cfg.EnableDeepChainAnalysis {
		run(func() { chains = detectors.DetectMoneyLaunderingChains(g) })
	}

	wg.Wait()

	sig.Cycles = cycles
	sig.FanOut, sig.FanIn = fanOut, fanIn
	sig.Shell = shell
	sig.Passthrough = passthrough
	sig.Structuring = structuring
	sig.ThresholdAvoidance = thresholdAvoidance
	sig.Velocity = velocity
	sig.AmountAnomaly = amountAnomaly
	sig.UnusualTiming = unusualTiming
	sig.Burst = burst
	sig.Dormancy = dormancy
	sig.AmountSplitting = amountSplitting
	sig.FrequencyAnomaly = frequencyAnomaly
	sig.NetworkInfluence = networkInfluence
	sig.RoundTrip = roundTrip
	sig.Layering = layering
	sig.LowDiversity = lowDiversity
	sig.AmountProgression = amountProgression
	sig.TemporalClustering = temporalClustering
	sig.CoordinatedBehavior = coordinated
	sig.SmurfingClusters = smurfing
	sig.WashTrading = wash
	if chains != nil {
		sig.MoneyLaunderingChain = chains
	}

	return sig
}
