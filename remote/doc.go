// Package remote resolves the head commit of hosted repositories
// without cloning them.
//
// A Checker answers "what is HEAD right now" for a repository URL,
// letting the sync path skip git pulls for levels that have not moved.
// GitHub and GitLab checkers are provided; Detect picks one from the
// URL's host. Checker failures are never fatal to a merge run, callers
// fall back to a plain pull.
package remote
