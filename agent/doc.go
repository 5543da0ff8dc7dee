// Package agent implements the hierarchical accumulation pass that merges
// configuration files across an ordered chain of sources.
//
// An Agent describes one AI tool's configuration layout: the subdirectory
// to look for inside each source (".claude", ".cursor", ...), the output
// directory merged files are written to, and optional pre/post merge hooks.
//
// An Accumulator walks the hierarchy in ascending priority order, discovers
// files per source, folds same-path files together using registry-selected
// mergers, and writes the results preserving directory structure. Later
// sources override earlier ones; that ordering is the entire correctness
// contract, which is why the pass is strictly sequential.
//
// No failure inside a run is fatal: unreadable sources, unparseable files,
// and failed writes are logged and skipped, and the run always reaches a
// "wrote N files" terminal state.
package agent
