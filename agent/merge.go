package agent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/randalmurphal/agentcfg/merge"
	"github.com/randalmurphal/agentcfg/report"
)

// Accumulator folds an ordered hierarchy of sources into one merged
// configuration tree for a single agent.
//
// The pass is strictly sequential and single-threaded: merge order across
// sources is the semantic contract, so there is nothing to parallelize.
// An Accumulator is built per run; the internal state map has exactly one
// writer and is discarded after the write phase.
type Accumulator struct {
	agent    *Agent
	registry *merge.Registry
	settings map[string]merge.Settings
	logger   *slog.Logger
	reporter report.Reporter
	runID    string
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithSettings supplies merger-specific preference overrides, keyed by
// merger name. Absent entries mean "use defaults".
func WithSettings(settings map[string]merge.Settings) Option {
	return func(a *Accumulator) { a.settings = settings }
}

// WithLogger sets the logger for warnings and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accumulator) { a.logger = logger }
}

// WithReporter sets the sink for run events. Defaults to NopReporter.
func WithReporter(r report.Reporter) Option {
	return func(a *Accumulator) { a.reporter = r }
}

// WithRunID tags emitted events with a run identifier.
func WithRunID(id string) Option {
	return func(a *Accumulator) { a.runID = id }
}

// NewAccumulator creates an accumulator for the given agent. The registry
// is threaded in explicitly; there is no shared default.
func NewAccumulator(ag *Agent, registry *merge.Registry, opts ...Option) *Accumulator {
	a := &Accumulator{
		agent:    ag,
		registry: registry,
		logger:   slog.Default(),
		reporter: report.NopReporter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FileResult records one written output file and its provenance.
type FileResult struct {
	// RelPath is the file's path relative to the agent's output directory.
	RelPath string

	// Sources lists the contributing hierarchy levels in priority order,
	// lowest first.
	Sources []string

	// Bytes is the size of the written content.
	Bytes int
}

// Result is the terminal state of a merge run. The run itself never fails;
// degraded conditions show up here as skip counts.
type Result struct {
	Agent   string
	RunID   string
	Started time.Time
	Done    time.Time

	// Written lists every output file, sorted by relative path.
	Written []FileResult

	// MissingSources names hierarchy levels whose root did not exist.
	MissingSources []string

	// SkippedFiles counts per-file failures (read or merge errors).
	SkippedFiles int

	// FailedWrites counts output files that could not be written.
	FailedWrites int

	// Warnings counts all degraded-but-continuing conditions.
	Warnings int
}

// entry is the accumulator state for one relative path: current merged
// content plus ordered provenance. The provenance list always has one
// element per contributing source, lowest priority first.
type entry struct {
	content string
	sources []string
}

// Run merges configuration files from the hierarchy and writes the results
// under the agent's output directory.
//
// Sources are processed in slice order, lowest priority first; later
// sources merge over earlier ones. Per-file and per-source failures are
// recoverable: they are logged, counted on the Result, and never abort the
// run. The returned Result is the complete terminal state.
func (a *Accumulator) Run(ctx context.Context, hierarchy []Source) *Result {
	result := &Result{
		Agent:   a.agent.Name,
		RunID:   a.runID,
		Started: time.Now(),
	}
	a.report(report.Event{
		Type:     report.EventRunStarted,
		Message:  fmt.Sprintf("Merging configurations for agent '%s'", a.agent.Name),
		Severity: report.SeverityInfo,
	})

	merged := make(map[string]*entry)
	excludes := a.agent.ExcludePatterns()

	for _, source := range hierarchy {
		if err := ctx.Err(); err != nil {
			a.logger.Warn("merge run interrupted", "source", source.Name, "error", err)
			break
		}
		a.processSource(source, excludes, merged, result)
	}

	a.writeResults(merged, result)

	result.Done = time.Now()
	a.report(report.Event{
		Type:     report.EventRunCompleted,
		Message:  fmt.Sprintf("Configuration merge complete: wrote %d file(s)", len(result.Written)),
		Severity: report.SeverityInfo,
	})
	return result
}

// processSource discovers one source's files and folds them into the
// accumulator map. A missing source root skips the whole source; an
// unreadable or unmergeable file skips that file.
func (a *Accumulator) processSource(source Source, excludes []string, merged map[string]*entry, result *Result) {
	if _, err := os.Stat(source.Root); err != nil {
		result.MissingSources = append(result.MissingSources, source.Name)
		result.Warnings++
		a.report(report.Event{
			Type:     report.EventSourceSkipped,
			Source:   source.Name,
			Message:  fmt.Sprintf("Source '%s' path does not exist: %s", source.Name, source.Root),
			Severity: report.SeverityWarning,
		})
		return
	}

	a.report(report.Event{
		Type:     report.EventSourceStarted,
		Source:   source.Name,
		Message:  fmt.Sprintf("Processing '%s'", source.Name),
		Severity: report.SeverityInfo,
	})

	files, err := Discover(source.Root, a.agent.DirName, excludes)
	if err != nil {
		a.logger.Warn("file discovery incomplete",
			"source", source.Name, "error", err)
		result.Warnings++
	}
	if len(files) == 0 {
		a.logger.Debug("no configuration files found", "source", source.Name, "agent_dir", a.agent.DirName)
		return
	}
	a.logger.Debug("discovered files", "source", source.Name, "count", len(files))

	for _, file := range files {
		if err := a.processFile(source, file, merged); err != nil {
			result.SkippedFiles++
			result.Warnings++
			a.report(report.Event{
				Type:     report.EventFileSkipped,
				Source:   source.Name,
				File:     file.RelPath,
				Message:  fmt.Sprintf("Could not process %s: %v", file.RelPath, err),
				Severity: report.SeverityWarning,
			})
		}
	}
}

// processFile reads, pre-hooks, and folds one discovered file.
func (a *Accumulator) processFile(source Source, file File, merged map[string]*entry) error {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	content := runPreHooks(a.agent.PreHooks, file.RelPath, string(raw), source, file.Path, a.logger)

	existing, ok := merged[file.RelPath]
	if !ok {
		// First occurrence: stored verbatim, no merger involved.
		merged[file.RelPath] = &entry{content: content, sources: []string{source.Name}}
		a.logger.Debug("collected file", "file", file.RelPath, "source", source.Name)
		return nil
	}

	merger := a.registry.Resolve(file.Path)
	settings := a.settings[merger.Name()]
	combined := merger.Merge(existing.content, content, source.Name, existing.sources, settings)

	existing.content = combined
	existing.sources = append(existing.sources, source.Name)
	a.report(report.Event{
		Type:     report.EventFileMerged,
		Source:   source.Name,
		File:     file.RelPath,
		Sources:  existing.sources,
		Message:  fmt.Sprintf("Merged %s (%s merger)", file.RelPath, merger.Name()),
		Severity: report.SeverityInfo,
	})
	return nil
}

// writeResults applies post-merge hooks and writes every accumulated file
// under the output root, preserving relative paths. One failed write does
// not prevent the rest.
func (a *Accumulator) writeResults(merged map[string]*entry, result *Result) {
	if len(merged) == 0 {
		result.Warnings++
		a.report(report.Event{
			Type:     report.EventRunCompleted,
			Message:  "No configuration files found in any hierarchy level",
			Severity: report.SeverityWarning,
		})
		return
	}

	for _, relPath := range sortedKeys(merged) {
		e := merged[relPath]
		content := runPostHooks(a.agent.PostHooks, relPath, e.content, e.sources, a.logger)

		outPath := filepath.Join(a.agent.OutputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			a.recordWriteFailure(result, relPath, err)
			continue
		}
		if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
			a.recordWriteFailure(result, relPath, err)
			continue
		}

		result.Written = append(result.Written, FileResult{
			RelPath: relPath,
			Sources: e.sources,
			Bytes:   len(content),
		})
		a.report(report.Event{
			Type:     report.EventFileWritten,
			File:     relPath,
			Sources:  e.sources,
			Message:  fmt.Sprintf("Wrote %s", relPath),
			Severity: report.SeverityInfo,
		})
	}
}

func (a *Accumulator) recordWriteFailure(result *Result, relPath string, err error) {
	result.FailedWrites++
	result.Warnings++
	a.report(report.Event{
		Type:     report.EventWriteFailed,
		File:     relPath,
		Message:  fmt.Sprintf("Failed to write %s: %v", relPath, err),
		Severity: report.SeverityError,
	})
}

func (a *Accumulator) report(event report.Event) {
	event.RunID = a.runID
	event.Agent = a.agent.Name
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := a.reporter.Report(event); err != nil {
		a.logger.Debug("reporter error", "error", err)
	}
}

func sortedKeys(m map[string]*entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
