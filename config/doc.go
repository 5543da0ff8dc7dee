// Package config manages the agentcfg configuration store.
//
// Configuration lives in a single YAML file, by default
// ~/.agentcfg/config.yaml, holding the ordered hierarchy of configuration
// sources plus sparse merger preference overrides:
//
//	hierarchy:
//	  - name: org
//	    url: https://github.com/example/org-config.git
//	    repo_type: git
//	  - name: personal
//	    url: file:///home/me/personal-config
//	    repo_type: file
//	mergers:
//	  json:
//	    indent: 4
//
// Hierarchy order is priority order: later entries override earlier ones
// during a merge. Validation collects every problem before failing, so a
// hand-edited file reports all of its mistakes at once.
package config
