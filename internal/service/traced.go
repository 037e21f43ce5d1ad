package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/relens/internal/tracing"
)

// TracedClient records one client span per Run and assigns the request id
// that the HTTP client sends upstream.
type TracedClient struct {
	next   Client
	tracer trace.Tracer
}

// NewTracedClient wraps next with spans from tracer.
func NewTracedClient(next Client, tracer trace.Tracer) *TracedClient {
	return &TracedClient{next: next, tracer: tracer}
}

// Run implements Client.
func (c *TracedClient) Run(ctx context.Context, s Snapshot) Result {
	requestID := tracing.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = tracing.ContextWithRequestID(ctx, requestID)
	}

	ctx, span := c.tracer.Start(ctx, tracing.SpanServiceRun,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrRequestID, requestID),
			attribute.String(tracing.AttrSnapshotKey, s.Key()),
			attribute.Int(tracing.AttrPatternBytes, len(s.Pattern)),
			attribute.Int(tracing.AttrConstraintsBytes, len(s.Constraints)),
			attribute.Int(tracing.AttrTextBytes, len(s.Text)),
		))
	defer span.End()

	res := c.next.Run(ctx, s)

	span.SetAttributes(
		attribute.Bool(tracing.AttrResultError, res.Failed()),
		attribute.Int(tracing.AttrAcceptedLines, len(res.Accepted)),
	)
	if res.Failed() {
		span.SetStatus(codes.Error, res.Error)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return res
}
