package report

import "time"

// EventType represents the type of merge-run event.
type EventType string

// Event type constants.
const (
	EventRunStarted    EventType = "run_started"
	EventRunCompleted  EventType = "run_completed"
	EventSourceStarted EventType = "source_started"
	EventSourceSkipped EventType = "source_skipped"
	EventFileMerged    EventType = "file_merged"
	EventFileSkipped   EventType = "file_skipped"
	EventFileWritten   EventType = "file_written"
	EventWriteFailed   EventType = "write_failed"
)

// Severity constants for events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Event describes one step of a merge run.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Agent     string    `json:"agent,omitempty"`
	Source    string    `json:"source,omitempty"`
	File      string    `json:"file,omitempty"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`

	// Sources lists contributing source names for file events.
	Sources []string `json:"sources,omitempty"`
}

// Reporter receives merge-run events. Implementations should be fast and
// must handle their own errors; the merge engine ignores the return value
// beyond logging.
type Reporter interface {
	Report(event Event) error
}

// NopReporter discards all events. Useful in tests and library callers
// that only want the Result.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(Event) error { return nil }
