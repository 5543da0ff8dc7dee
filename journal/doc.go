// Package journal records merge runs for later inspection.
//
// Every merge run writes one JSON record under the configuration
// store's runs directory: which agent was merged, which files were
// written and from which hierarchy levels, and how the run ended.
// Records are the backing data for the history CLI commands.
package journal
