package logging

import (
	"context"
	"log/slog"
)

// Handler decorates every record with service identity, the module and the
// request/run ids found on the context.
type Handler struct {
	next          slog.Handler
	defaultModule Module
	projectID     string
}

func NewHandler(next slog.Handler, info ServiceInfo, env Environment, defaultModule Module, projectID string) *Handler {
	attrs := []slog.Attr{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
		slog.String("env", string(env)),
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return &Handler{
		next:          next.WithAttrs(attrs),
		defaultModule: defaultModule,
		projectID:     projectID,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFromContext(ctx); ok {
		module = m
	}
	r.AddAttrs(slog.String("module", string(module)))

	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if id := RunIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("run_id", id))
	}

	r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs), defaultModule: h.defaultModule, projectID: h.projectID}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), defaultModule: h.defaultModule, projectID: h.projectID}
}
