package report

import (
	"context"
	"log/slog"
)

// LogReporter forwards events to slog.
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter creates a reporter that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{Logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(event Event) error {
	level := slog.LevelInfo
	switch event.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}

	r.Logger.Log(context.Background(), level, event.Message,
		"type", event.Type,
		"run_id", event.RunID,
		"agent", event.Agent,
		"source", event.Source,
		"file", event.File,
	)
	return nil
}
