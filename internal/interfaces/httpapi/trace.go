package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("goalserve-heatmap/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// feedParams maps chi URL params to the span attributes they are copied to.
var feedParams = [][2]string{
	{"leagueID", "goalserve.league_id"},
	{"matchID", "goalserve.match_id"},
	{"season", "goalserve.season"},
}

// startSpan opens spans for handlers only. Helpers and middleware reuse the
// request span opened by otelhttp.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startHandlerSpan is startSpan plus the matched route and feed identifiers.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return startSpan(r.Context(), name, routeAttributes(r)...)
}

func routeAttributes(r *http.Request) []attribute.KeyValue {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	attrs := make([]attribute.KeyValue, 0, len(feedParams)+1)
	if pattern := rctx.RoutePattern(); pattern != "" {
		attrs = append(attrs, attribute.String("http.route", pattern))
	}
	for _, p := range feedParams {
		if v := rctx.URLParam(p[0]); v != "" {
			attrs = append(attrs, attribute.String(p[1], v))
		}
	}
	return attrs
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
