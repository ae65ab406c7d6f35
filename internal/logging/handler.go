package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

// SwappableHandler forwards records to a slog.Handler that can be atomically
// replaced at runtime. Handlers derived through WithAttrs and WithGroup share
// the replaceable root, so loggers created before a swap follow it.
type SwappableHandler struct {
	root *atomic.Pointer[slog.Handler]

	// derive replays WithAttrs/WithGroup calls on top of the root handler.
	derive []func(slog.Handler) slog.Handler
}

// NewSwappableHandler creates a handler with an initial handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	root := new(atomic.Pointer[slog.Handler])
	root.Store(&initial)
	return &SwappableHandler{root: root}
}

// Swap atomically replaces the root handler for this handler and every
// handler derived from it.
func (sh *SwappableHandler) Swap(newHandler slog.Handler) {
	sh.root.Store(&newHandler)
}

func (sh *SwappableHandler) current() slog.Handler {
	h := *sh.root.Load()
	for _, fn := range sh.derive {
		h = fn(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (sh *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*sh.root.Load()).Enabled(ctx, level)
}

// Handle handles the Record.
func (sh *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return sh.current().Handle(ctx, r)
}

// WithAttrs returns a derived handler that adds attrs to every record.
func (sh *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return sh.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup returns a derived handler that nests attributes under name.
func (sh *SwappableHandler) WithGroup(name string) slog.Handler {
	return sh.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (sh *SwappableHandler) with(fn func(slog.Handler) slog.Handler) *SwappableHandler {
	return &SwappableHandler{
		root:   sh.root,
		derive: append(slices.Clip(sh.derive), fn),
	}
}
