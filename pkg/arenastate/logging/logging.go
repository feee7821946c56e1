package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const (
	LevelTrace  = slog.Level(-8)
	LevelSilent = slog.Level(16)
)

var (
	mu      sync.RWMutex
	base    slog.Handler = slog.Default().Handler()
	level                = new(slog.LevelVar)
	levels               = map[string]slog.Level{}
	disable              = map[string]bool{}
)

// ParseLevel accepts the ARENASTATE_LOGLEVEL names. Empty means INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "SILENT":
		return LevelSilent, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Setup installs a text handler at the given level as the slog default.
func Setup(levelName string, w io.Writer) error {
	lvl, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	level.Set(lvl)

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: LevelTrace})

	mu.Lock()
	base = h
	mu.Unlock()

	slog.SetDefault(slog.New(&filterHandler{next: h, level: level}))
	return nil
}

// SetLevel overrides the level of one component logger.
func SetLevel(name string, lvl slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	levels[name] = lvl
}

// Disable restricts a component logger to errors.
func Disable(name string, disabled bool) {
	mu.Lock()
	defer mu.Unlock()
	disable[name] = disabled
}

// Logger returns the logger for a named component.
func Logger(name string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	var leveler slog.Leveler = level
	if lvl, ok := levels[name]; ok {
		leveler = lvl
	}
	if disable[name] {
		leveler = slog.LevelError
	}

	h := &filterHandler{next: base, level: leveler}
	return slog.New(h).With("component", name)
}

type filterHandler struct {
	next  slog.Handler
	level slog.Leveler
}

func (h *filterHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return lvl >= h.level.Level() && h.next.Enabled(ctx, lvl)
}

func (h *filterHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *filterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &filterHandler{next: h.next.WithAttrs(attrs), level: h.level}
}

func (h *filterHandler) WithGroup(name string) slog.Handler {
	return &filterHandler{next: h.next.WithGroup(name), level: h.level}
}
