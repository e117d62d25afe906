// Package telemetry wraps pipeline stages in OpenTelemetry spans, the same
// tracer-start-defer-end shape osprey's TracingMiddleware uses for HTTP
// requests, applied here to engine stages instead.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fraudgraph-engine")

// StartStage begins a span for one pipeline stage. Call the returned
// function when the stage completes; it ends the span.
func StartStage(ctx context.Context, stage string) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, "stage."+stage,
		trace.WithAttributes(attribute.String("fraudgraph.stage", stage)),
	)
	return ctx, func() { span.End() }
}

// StartRun begins a span covering an entire analysis run, tagged with the
// run id and transaction count so traces can be correlated with archived
// reports and log lines sharing the same run id.
func StartRun(ctx context.Context, runID string, transactionCount int) (context.Context, func()) {
	ctx, span := tracer.Start(ctx, "fraudgraph.analyze",
		trace.WithAttributes(
			attribute.String("fraudgraph.run_id", runID),
			attribute.Int("fraudgraph.transaction_count", transactionCount),
		),
	)
	return ctx, func() { span.End() }
}
