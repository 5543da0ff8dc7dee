// Package repo materializes hierarchy levels onto the local filesystem.
//
// Each hierarchy entry names a repository backend by type: "git" clones
// the URL under the configuration store's repos directory and keeps it
// current with pulls, "file" points straight at a local directory. Both
// satisfy the Repo interface, so the rest of the tool only sees local
// paths.
//
// Git operations shell out through a CommandRunner, injectable for
// testing.
package repo
