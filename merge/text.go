package merge

import "fmt"

// TextMerger concatenates plain text content with a source marker between
// sections. No preferences.
type TextMerger struct{}

// NewTextMerger returns the merger for .txt files.
func NewTextMerger() *TextMerger { return &TextMerger{} }

// Name implements Merger.
func (*TextMerger) Name() string { return "text" }

// Preferences implements Merger.
func (*TextMerger) Preferences() Schema { return nil }

// Merge implements Merger.
func (*TextMerger) Merge(base, incoming, source string, priorSources []string, settings Settings) string {
	return base + fmt.Sprintf("\n\n# --- From: %s ---\n\n", source) + incoming
}
