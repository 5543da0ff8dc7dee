// Package agentcfg merges hierarchical AI agent configurations.
//
// Teams layer configuration for coding agents (Claude, Cursor, Copilot)
// across organization, team, and personal repositories. agentcfg pulls
// each level, merges overlapping files by format, and writes the result
// into the agent's local configuration directory.
//
// The package is organized into subpackages by domain:
//
//   - merge: format-aware file mergers and merge strategies
//   - agent: agent definitions, file discovery, and the merge run
//   - config: the ~/.agentcfg configuration store
//   - repo: git and local-directory hierarchy backends
//   - remote: remote head resolution for staleness checks
//   - auth: tokens, GitHub App credentials, ssh-agent preflight
//   - journal: merge run history
//   - report: run event reporting (console, log)
//   - testutil: test utilities and fixtures
//
// # Quick Start
//
//	store, _ := config.NewStore("")
//	mgr, _ := agentcfg.New(store)
//
//	// Pull every hierarchy level up to date.
//	mgr.Sync(ctx)
//
//	// Merge the hierarchy for one agent.
//	result, _ := mgr.Merge(ctx, "claude", agentcfg.MergeOptions{})
//
// See individual package documentation for detailed usage.
package agentcfg
