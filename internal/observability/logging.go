// Package observability carries per-load logging context (load id, selected
// environment, command, config path) through context.Context.
package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// LogContext holds the attributes attached to every record logged through
// this package.
type LogContext struct {
	LoadID      string
	Environment string
	Command     string
	ConfigPath  string
}

// Attrs returns the non-empty fields as slog attributes.
func (lc LogContext) Attrs() []slog.Attr {
	var attrs []slog.Attr
	add := func(v string, attr func(string) slog.Attr) {
		if v != "" {
			attrs = append(attrs, attr(v))
		}
	}
	add(lc.LoadID, logfields.LoadID)
	add(lc.Environment, logfields.Environment)
	add(lc.Command, logfields.Command)
	add(lc.ConfigPath, logfields.Path)
	return attrs
}

type logContextKeyType struct{}

var logContextKey logContextKeyType

// NewLoadID returns a fresh identifier for one configuration load.
func NewLoadID() string {
	return uuid.NewString()
}

func update(ctx context.Context, set func(*LogContext)) context.Context {
	lc := GetContext(ctx)
	set(&lc)
	return context.WithValue(ctx, logContextKey, lc)
}

func WithLoadID(ctx context.Context, id string) context.Context {
	return update(ctx, func(lc *LogContext) { lc.LoadID = id })
}

// WithEnvironment records the selected overlay; "" is the base document.
func WithEnvironment(ctx context.Context, env string) context.Context {
	return update(ctx, func(lc *LogContext) { lc.Environment = env })
}

func WithCommand(ctx context.Context, command string) context.Context {
	return update(ctx, func(lc *LogContext) { lc.Command = command })
}

func WithConfigPath(ctx context.Context, path string) context.Context {
	return update(ctx, func(lc *LogContext) { lc.ConfigPath = path })
}

// GetContext returns the LogContext stored in ctx, or the zero value.
func GetContext(ctx context.Context) LogContext {
	lc, _ := ctx.Value(logContextKey).(LogContext)
	return lc
}

// HasContextValue reports whether the field named by a logfields key is set.
func HasContextValue(ctx context.Context, field string) bool {
	for _, a := range GetContext(ctx).Attrs() {
		if a.Key == field {
			return true
		}
	}
	return false
}

func logAttrs(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	slog.LogAttrs(ctx, level, msg, append(GetContext(ctx).Attrs(), attrs...)...)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelError, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelDebug, msg, attrs)
}
