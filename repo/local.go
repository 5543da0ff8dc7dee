package repo

import (
	"context"
	"fmt"
	"os"
)

// LocalRepo is a hierarchy level backed by a plain local directory.
// There is nothing to synchronize; the directory is used in place.
type LocalRepo struct {
	name string
	url  string
	path string
}

func (r *LocalRepo) Name() string { return r.name }
func (r *LocalRepo) URL() string  { return r.url }
func (r *LocalRepo) Path() string { return r.path }

func (r *LocalRepo) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && info.IsDir()
}

// NeedsUpdate always reports false: the directory is the source.
func (r *LocalRepo) NeedsUpdate(ctx context.Context) (bool, error) {
	return false, nil
}

// Update verifies the directory exists.
func (r *LocalRepo) Update(ctx context.Context) error {
	if !r.Exists() {
		return &Error{Op: "update", Name: r.name, Err: fmt.Errorf("%w: %s", ErrNotMaterialized, r.path)}
	}
	return nil
}
