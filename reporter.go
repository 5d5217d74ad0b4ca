package reshape

import (
	"context"
	"log/slog"
)

// Reporter receives trace events while rules are applied.
type Reporter interface {
	// Applied is called after the value matched at from was written to to.
	Applied(rule int, from, to string)
	// Skipped is called when a transform returned no result for path.
	Skipped(rule int, path string)
	// Unmatched is called when a rule produced no result for any path.
	Unmatched(rule int, pattern string)
}

type slogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter returns a Reporter which logs every event at debug level.
func NewSlogReporter(logger *slog.Logger) Reporter {
	return slogReporter{logger: logger}
}

func (r slogReporter) Applied(rule int, from, to string) {
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "applied",
		slog.Int("rule", rule), slog.String("from", from), slog.String("to", to))
}

func (r slogReporter) Skipped(rule int, path string) {
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "skipped",
		slog.Int("rule", rule), slog.String("path", path))
}

func (r slogReporter) Unmatched(rule int, pattern string) {
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "unmatched",
		slog.Int("rule", rule), slog.String("pattern", pattern))
}
