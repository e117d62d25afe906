// Package metrics exposes Prometheus collectors for the analysis pipeline,
// in the same promauto package-level-var style as fluxflow's metrics
// package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_runs_started_total",
		Help: "Total number of analysis runs started.",
	})

	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_runs_completed_total",
		Help: "Total number of analysis runs completed successfully.",
	})

	RunsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_runs_failed_total",
		Help: "Total number of analysis runs that returned an error.",
	})

	TransactionsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_transactions_analyzed_total",
		Help: "Total number of transactions ingested across all runs.",
	})

	SuspiciousAccountsFlagged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_suspicious_accounts_flagged_total",
		Help: "Total number of accounts flagged suspicious across all runs.",
	})

	FraudRingsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fraudgraph_fraud_rings_detected_total",
		Help: "Total number of fraud rings assembled across all runs.",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fraudgraph_stage_duration_seconds",
		Help:    "Duration of each pipeline stage, labelled by stage name.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"stage"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fraudgraph_run_duration_seconds",
		Help:    "End-to-end analysis run duration.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	})
)
