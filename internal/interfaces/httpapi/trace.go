package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fantasy-auction/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for Handler methods under an existing request
// span. Untraced routes (health, websocket) get the no-op span. Authenticated
// requests are tagged with the caller's team.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}

	ctx, span := apiTracer.Start(ctx, name)
	if t, ok := teamFromContext(ctx); ok {
		span.SetAttributes(
			attribute.Int64("fantasy.team_id", t.ID),
			attribute.Bool("fantasy.team_admin", t.IsAdmin),
		)
	}
	return ctx, span
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
