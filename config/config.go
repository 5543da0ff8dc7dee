package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default locations under the user's home directory.
const (
	// DefaultDirName is the configuration directory, ~/.agentcfg.
	DefaultDirName = ".agentcfg"

	// FileName is the configuration file inside the directory.
	FileName = "config.yaml"

	// ReposDirName is where remote sources are materialized.
	ReposDirName = "repos"

	// RunsDirName is where the merge-run journal lives.
	RunsDirName = "runs"
)

// ErrNotFound indicates the configuration file does not exist yet.
var ErrNotFound = errors.New("configuration file not found")

// HierarchyEntry is one level of the configuration hierarchy.
type HierarchyEntry struct {
	// Name identifies the level ("org", "team", "personal"). Unique
	// within the hierarchy.
	Name string `yaml:"name"`

	// URL locates the level's repository: a git URL or a file:// path.
	URL string `yaml:"url"`

	// RepoType names the backend that materializes the URL ("git",
	// "file").
	RepoType string `yaml:"repo_type"`
}

// Data is the parsed configuration file.
type Data struct {
	// Hierarchy is ordered by priority, lowest first.
	Hierarchy []HierarchyEntry `yaml:"hierarchy"`

	// Mergers holds sparse preference overrides keyed by merger name.
	Mergers map[string]map[string]any `yaml:"mergers,omitempty"`
}

// ValidationError collects every problem found in a configuration file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration has %d errors:", len(e.Problems))
	for _, p := range e.Problems {
		sb.WriteString("\n  - ")
		sb.WriteString(p)
	}
	return sb.String()
}

// Store reads and writes the configuration directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir means
// ~/.agentcfg.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the configuration directory.
func (s *Store) Dir() string { return s.dir }

// File returns the path of the configuration file.
func (s *Store) File() string { return filepath.Join(s.dir, FileName) }

// ReposDir returns the directory remote sources are materialized into.
func (s *Store) ReposDir() string { return filepath.Join(s.dir, ReposDirName) }

// RunsDir returns the directory the merge-run journal lives in.
func (s *Store) RunsDir() string { return filepath.Join(s.dir, RunsDirName) }

// EnsureDirs creates the configuration directories if needed.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.dir, s.ReposDir(), s.RunsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads and validates the configuration file.
func (s *Store) Load() (*Data, error) {
	raw, err := os.ReadFile(s.File())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'agentcfg config init')", ErrNotFound, s.File())
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if err := Validate(&data); err != nil {
		return nil, err
	}

	for i := range data.Hierarchy {
		data.Hierarchy[i].URL = NormalizeURL(data.Hierarchy[i].URL)
	}
	return &data, nil
}

// Save validates data and writes it to the configuration file.
func (s *Store) Save(data *Data) error {
	if err := Validate(data); err != nil {
		return err
	}
	if err := s.EnsureDirs(); err != nil {
		return err
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := os.WriteFile(s.File(), out, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// Init creates the configuration directories and, unless one already
// exists, an empty configuration file skeleton.
func (s *Store) Init() error {
	if err := s.EnsureDirs(); err != nil {
		return err
	}
	if _, err := os.Stat(s.File()); err == nil {
		return nil // keep the existing file
	}
	skeleton := "# agentcfg configuration\n# Add hierarchy levels with 'agentcfg config add'.\nhierarchy: []\n"
	if err := os.WriteFile(s.File(), []byte(skeleton), 0o644); err != nil {
		return fmt.Errorf("write configuration skeleton: %w", err)
	}
	return nil
}

// Validate checks the structure of a configuration, collecting all
// problems before failing. An empty hierarchy is valid; it is the
// state 'config init' leaves behind.
func Validate(data *Data) error {
	var problems []string

	seen := make(map[string]bool)
	for i, entry := range data.Hierarchy {
		if entry.Name == "" {
			problems = append(problems, fmt.Sprintf("hierarchy entry %d: name cannot be empty", i))
		} else if seen[entry.Name] {
			problems = append(problems, fmt.Sprintf("hierarchy entry %d: duplicate name %q", i, entry.Name))
		}
		seen[entry.Name] = true

		if entry.URL == "" {
			problems = append(problems, fmt.Sprintf("hierarchy entry %d: url cannot be empty", i))
		}
		if entry.RepoType == "" {
			problems = append(problems, fmt.Sprintf("hierarchy entry %d: repo_type cannot be empty", i))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// NormalizeURL resolves file:// URLs to absolute paths so that relative
// configuration entries survive directory changes. Other URLs pass
// through unchanged.
func NormalizeURL(url string) string {
	path, ok := strings.CutPrefix(url, "file://")
	if !ok {
		return url
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + path
}
