// Package merge implements type-aware content merging for configuration files.
//
// The package provides three layers:
//
//   - Strategy: policies for combining structured values (maps, sequences,
//     scalars) independent of file format. See DefaultStrategy,
//     ExtendListStrategy, and ReplaceMapStrategy.
//   - Merger: per-format merge algorithms. Dict-based formats (JSON, YAML)
//     deserialize, merge via a Strategy, and re-serialize. Markdown and text
//     concatenate with source markers. Copy is the last-wins fallback.
//   - Registry: maps filenames and extensions to mergers, with a default
//     fallback for unknown types.
//
// The single unifying invariant across every strategy and merger: the
// later (higher priority) source's value wins at any point of conflict.
//
// Mergers never fail. Content that cannot be parsed or merged degrades to
// the incoming source's version, with a logged warning.
package merge
