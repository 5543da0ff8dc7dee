package agent

import (
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PreHookFunc transforms a source file's raw content before it is merged.
// It receives the content, the contributing source, and the file's absolute
// path. Returning an error leaves the content unmodified; the run continues.
type PreHookFunc func(content string, source Source, path string) (string, error)

// PostHookFunc transforms final merged content before it is written. It
// receives the content, the file's relative path, and the full ordered list
// of contributing sources.
type PostHookFunc func(content string, relPath string, sources []string) (string, error)

// PreHook pairs a glob pattern with a pre-merge transformation.
type PreHook struct {
	Pattern string
	Func    PreHookFunc
}

// PostHook pairs a glob pattern with a post-merge transformation.
type PostHook struct {
	Pattern string
	Func    PostHookFunc
}

// hookMatches reports whether a hook pattern matches a file's relative
// path. Patterns match against the full relative path ("agents/*.md") and,
// as a convenience, against the base name alone, so "*.json" applies to
// JSON files at any depth.
func hookMatches(pattern, relPath string) bool {
	if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
		return true
	}
	if ok, err := doublestar.Match(pattern, filepath.Base(relPath)); err == nil && ok {
		return true
	}
	return false
}

// runPreHooks applies every matching pre-merge hook in registration order,
// cumulatively transforming content. A failing hook is logged and behaves
// as if it were not registered for this file.
func runPreHooks(hooks []PreHook, relPath, content string, source Source, path string, logger *slog.Logger) string {
	for _, h := range hooks {
		if !hookMatches(h.Pattern, relPath) {
			continue
		}
		out, err := h.Func(content, source, path)
		if err != nil {
			logger.Warn("pre-merge hook failed, content unmodified",
				"file", relPath, "pattern", h.Pattern, "source", source.Name, "error", err)
			continue
		}
		content = out
	}
	return content
}

// runPostHooks applies every matching post-merge hook in registration
// order. Failure semantics match runPreHooks.
func runPostHooks(hooks []PostHook, relPath, content string, sources []string, logger *slog.Logger) string {
	for _, h := range hooks {
		if !hookMatches(h.Pattern, relPath) {
			continue
		}
		out, err := h.Func(content, relPath, sources)
		if err != nil {
			logger.Warn("post-merge hook failed, content unmodified",
				"file", relPath, "pattern", h.Pattern, "error", err)
			continue
		}
		content = out
	}
	return content
}
