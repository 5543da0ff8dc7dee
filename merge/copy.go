package merge

import "log/slog"

// CopyMerger keeps the last source's content unchanged. This is the
// universal fallback for file types without a registered merger: binary
// files, images, or anything that cannot be merged intelligently.
type CopyMerger struct {
	// Logger receives the last-wins warning. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewCopyMerger returns the last-wins fallback merger.
func NewCopyMerger() *CopyMerger { return &CopyMerger{} }

// Name implements Merger.
func (m *CopyMerger) Name() string { return "copy" }

// Preferences implements Merger.
func (m *CopyMerger) Preferences() Schema { return nil }

// Merge implements Merger. base is discarded. A warning identifies which
// source's version won, but only when an earlier source actually
// contributed content; a file's first occurrence needs no warning.
func (m *CopyMerger) Merge(base, incoming, source string, priorSources []string, settings Settings) string {
	if len(priorSources) > 0 {
		logger := m.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("no merger registered for this file type, using copy strategy",
			"winning_source", source,
			"discarded_sources", priorSources,
		)
	}
	return incoming
}
