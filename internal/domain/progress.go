package domain

// ProgressCallback is invoked synchronously and serially by the engine at
// named milestones (spec §4.8). Implementations MUST NOT mutate engine
// state from within the callback.
type ProgressCallback func(stage Stage, message string, percent float64)

// Stage names the seven pipeline stages an analysis run passes through, in
// order (spec §5).
type Stage string

const (
	StageGraphBuild    Stage = "graph_build"
	StageStatistics    Stage = "statistics"
	StageDetectors     Stage = "detectors"
	StageCommunity     Stage = "community"
	StageScoring       Stage = "scoring"
	StageRingAssembly  Stage = "ring_assembly"
	StageReportBuild   Stage = "report_build"
)

// StagePercent is the cumulative progress percentage reported at the start
// of each stage, used by the default CLI reporter.
var StagePercent = map[Stage]float64{
	StageGraphBuild:   5,
	StageStatistics:   15,
	StageDetectors:    30,
	StageCommunity:    60,
	StageScoring:      75,
	StageRingAssembly: 88,
	StageReportBuild:  97,
}
