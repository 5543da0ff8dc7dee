package merge

// Merger combines two versions of a file's content into one. Implementations
// are stateless and safe to share across files and runs.
//
// Merge never returns an error: per the engine's recovery contract, content
// that cannot be merged degrades to returning incoming unchanged (last
// source wins) with a logged warning. The accumulator relies on this to
// keep a single bad file from aborting a run.
type Merger interface {
	// Name is the merger's stable identity, used as the key for
	// merger-specific settings in the configuration store.
	Name() string

	// Merge folds incoming content from source into base. priorSources
	// lists the sources that already contributed to base, in priority
	// order (lowest first); it is empty on a file's first occurrence.
	// settings carries raw user preferences for this merger; unknown or
	// invalid entries are ignored.
	Merge(base, incoming, source string, priorSources []string, settings Settings) string

	// Preferences declares the merger's configurable settings. Empty for
	// mergers with nothing to configure.
	Preferences() Schema
}
