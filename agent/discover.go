package agent

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one discovered configuration file within a source.
type File struct {
	// Path is the absolute path to the file.
	Path string

	// RelPath is the path relative to the agent subdirectory, used as the
	// accumulator key and the output location.
	RelPath string
}

// Discover recursively enumerates the files under sourceRoot/dirName.
//
// A missing subdirectory is not an error: the source simply contributes
// nothing. Directories are never returned. Entries whose base name matches
// any exclude glob are skipped; matching directories are pruned entirely,
// so nothing inside an excluded directory is discovered. Results are
// sorted lexicographically by full path for reproducible output.
func Discover(sourceRoot, dirName string, excludes []string) ([]File, error) {
	root := filepath.Join(sourceRoot, dirName)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip it, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if excluded(d.Name(), excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = d.Name()
		}
		files = append(files, File{Path: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return files, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// excluded reports whether a base name matches any exclude glob.
func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
