package merge

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// Registry resolves the merger for a file by its name or extension.
//
// Resolution order is strict: exact filename match, then extension match
// (case-sensitive), then the default merger. Re-registering a filename or
// extension silently overwrites the prior mapping.
//
// A Registry is an explicit value threaded through the accumulator, not a
// process-wide singleton. It is not safe for concurrent mutation; build it
// up front and treat it as read-only during a merge run.
type Registry struct {
	byFilename  map[string]Merger
	byExtension map[string]Merger
	fallback    Merger

	// Logger receives resolution debug logs. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewRegistry returns a registry with the built-in mergers registered:
// JSON, YAML, markdown, and text by extension, with copy as the default
// fallback. This is the complete static registration table; there is no
// runtime plugin scanning.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.RegisterExtension(".json", NewJSONMerger())
	yamlMerger := NewYAMLMerger()
	r.RegisterExtension(".yaml", yamlMerger)
	r.RegisterExtension(".yml", yamlMerger)
	mdMerger := NewMarkdownMerger()
	r.RegisterExtension(".md", mdMerger)
	r.RegisterExtension(".markdown", mdMerger)
	r.RegisterExtension(".txt", NewTextMerger())
	return r
}

// NewEmptyRegistry returns a registry with no registrations and the copy
// merger as the default.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byFilename:  make(map[string]Merger),
		byExtension: make(map[string]Merger),
		fallback:    NewCopyMerger(),
	}
}

// RegisterFilename maps an exact filename (e.g. "mcp.json") to a merger.
// Filename registrations outrank extension registrations.
func (r *Registry) RegisterFilename(filename string, m Merger) {
	r.byFilename[filename] = m
	r.logger().Debug("registered merger for filename", "merger", m.Name(), "filename", filename)
}

// RegisterExtension maps a file extension (e.g. ".json") to a merger. A
// missing leading dot is added. Matching is case-sensitive: ".JSON" and
// ".json" are distinct registrations.
func (r *Registry) RegisterExtension(ext string, m Merger) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.byExtension[ext] = m
	r.logger().Debug("registered merger for extension", "merger", m.Name(), "extension", ext)
}

// SetDefault replaces the fallback merger used when nothing matches.
func (r *Registry) SetDefault(m Merger) {
	r.fallback = m
	r.logger().Debug("set default merger", "merger", m.Name())
}

// Resolve returns the merger for a file path: exact filename match first,
// then extension, then the default.
func (r *Registry) Resolve(path string) Merger {
	filename := filepath.Base(path)
	if m, ok := r.byFilename[filename]; ok {
		r.logger().Debug("resolved merger by filename", "merger", m.Name(), "filename", filename)
		return m
	}
	if m, ok := r.byExtension[filepath.Ext(filename)]; ok {
		r.logger().Debug("resolved merger by extension", "merger", m.Name(), "filename", filename)
		return m
	}
	r.logger().Debug("no specific merger, using default", "merger", r.fallback.Name(), "filename", filename)
	return r.fallback
}

// Default returns the fallback merger.
func (r *Registry) Default() Merger { return r.fallback }

// Mergers returns every distinct registered merger, including the default,
// sorted by name. Used by the CLI to list mergers and their preferences.
func (r *Registry) Mergers() []Merger {
	seen := make(map[string]Merger)
	for _, m := range r.byFilename {
		seen[m.Name()] = m
	}
	for _, m := range r.byExtension {
		seen[m.Name()] = m
	}
	seen[r.fallback.Name()] = r.fallback

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Merger, 0, len(names))
	for _, name := range names {
		out = append(out, seen[name])
	}
	return out
}

// Registrations returns the filename and extension tables as sorted name
// lists plus the default merger name, for display.
func (r *Registry) Registrations() (filenames, extensions []string, fallback string) {
	for name := range r.byFilename {
		filenames = append(filenames, name)
	}
	for ext := range r.byExtension {
		extensions = append(extensions, ext)
	}
	sort.Strings(filenames)
	sort.Strings(extensions)
	return filenames, extensions, r.fallback.Name()
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
