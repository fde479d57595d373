package logger

import (
	"context"
	"log/slog"

	"github.com/ghostworker/gatekit/pkg/gate"
)

// ContextExtractor extracts a slog attribute from context at log time.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// TierExtractor injects the request's plan tier into log records when
// upstream middleware stored it in the context.
func TierExtractor(ctx context.Context) (slog.Attr, bool) {
	if tier, ok := gate.TierFromContext(ctx); ok {
		return slog.String("plan_tier", string(tier)), true
	}
	return slog.Attr{}, false
}

// ContextValue returns an extractor that reads a single context value under
// the given attribute name. Useful for request-scoped data like tenant IDs.
func ContextValue(name string, key any) ContextExtractor {
	if name == "" || key == nil {
		return nil
	}
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	}
}

// extractorHandler wraps a slog.Handler and injects context attributes per
// log call so request-scoped values are always fresh.
type extractorHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newExtractorHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return &extractorHandler{next: next, extractors: extractors}
}

func (h *extractorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *extractorHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *extractorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &extractorHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *extractorHandler) WithGroup(name string) slog.Handler {
	return &extractorHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
