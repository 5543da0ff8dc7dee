package report

import "log/slog"

// MultiReporter fans events out to multiple reporters. A failing reporter
// is logged and does not stop delivery to the others.
type MultiReporter struct {
	Reporters []Reporter
	Logger    *slog.Logger
}

// NewMultiReporter creates a reporter that fans out to the given reporters.
func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{
		Reporters: reporters,
		Logger:    slog.Default(),
	}
}

// Report implements Reporter. Returns the last error, if any.
func (m *MultiReporter) Report(event Event) error {
	var lastErr error
	for _, r := range m.Reporters {
		if err := r.Report(event); err != nil {
			lastErr = err
			if m.Logger != nil {
				m.Logger.Warn("reporter failed",
					"error", err,
					"event_type", event.Type,
				)
			}
		}
	}
	return lastErr
}
