package agent

import "path/filepath"

// BaseExcludePatterns are always skipped during file discovery: version
// control metadata, bytecode caches, OS metadata, dependency directories,
// and repo boilerplate that is not agent configuration.
var BaseExcludePatterns = []string{
	".git",
	".gitignore",
	"__pycache__",
	"*.pyc",
	".DS_Store",
	"README.md",
	"LICENSE",
	".venv",
	"venv",
	"env",
	"node_modules",
	".pytest_cache",
	".ruff_cache",
	"*.egg-info",
}

// Agent describes one AI tool's configuration layout.
type Agent struct {
	// Name identifies the agent ("claude", "cursor", ...).
	Name string

	// DirName is the subdirectory to search for inside each source root,
	// e.g. ".claude". Sources may carry configuration for several agents
	// side by side; each agent only sees its own directory.
	DirName string

	// OutputDir is where merged files are written, preserving the
	// relative paths found under DirName.
	OutputDir string

	// ExtraExcludes extends BaseExcludePatterns for this agent.
	ExtraExcludes []string

	// PreHooks transform each source's raw content before it is folded
	// into the accumulator. PostHooks transform final merged content
	// before write. Every hook whose pattern matches applies, in
	// registration order.
	PreHooks  []PreHook
	PostHooks []PostHook
}

// ExcludePatterns returns the base exclude set plus the agent's additions.
func (a *Agent) ExcludePatterns() []string {
	patterns := make([]string, 0, len(BaseExcludePatterns)+len(a.ExtraExcludes))
	patterns = append(patterns, BaseExcludePatterns...)
	patterns = append(patterns, a.ExtraExcludes...)
	return patterns
}

// Source is one level of the configuration hierarchy, already materialized
// to a local directory by the repo layer. Order in the hierarchy slice is
// priority: later entries override earlier ones.
type Source struct {
	// Name identifies the hierarchy level ("org", "team", "personal").
	Name string

	// Root is the resolved local path of the level's repository.
	Root string
}

// Builtin returns the static table of supported agents, keyed by name.
// Output directories live under the given home directory. This is a
// compiled-in registration table; new agents are added here or via an
// explicit entry in the returned map, never discovered at runtime.
func Builtin(home string) map[string]*Agent {
	return map[string]*Agent{
		"claude": {
			Name:      "claude",
			DirName:   ".claude",
			OutputDir: filepath.Join(home, ".claude"),
		},
		"cursor": {
			Name:      "cursor",
			DirName:   ".cursor",
			OutputDir: filepath.Join(home, ".cursor"),
		},
		"copilot": {
			Name:      "copilot",
			DirName:   ".copilot",
			OutputDir: filepath.Join(home, ".copilot"),
		},
	}
}
