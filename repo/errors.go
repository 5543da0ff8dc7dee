package repo

import "errors"

// Repository errors.
var (
	// ErrUnsupportedType indicates a hierarchy entry names an unknown
	// repository backend.
	ErrUnsupportedType = errors.New("unsupported repository type")

	// ErrNotMaterialized indicates the repository has not been cloned
	// or the local path does not exist.
	ErrNotMaterialized = errors.New("repository not materialized")

	// ErrNotGitRepo indicates the local path exists but is not a git
	// repository.
	ErrNotGitRepo = errors.New("not a git repository")
)

// Error wraps a repository operation failure with context.
type Error struct {
	Op   string // Operation that failed (e.g., "clone", "pull")
	Name string // Hierarchy level name
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return e.Op + " " + e.Name + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
