package agentcfg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/randalmurphal/agentcfg/agent"
	"github.com/randalmurphal/agentcfg/auth"
	"github.com/randalmurphal/agentcfg/config"
	"github.com/randalmurphal/agentcfg/journal"
	"github.com/randalmurphal/agentcfg/merge"
	"github.com/randalmurphal/agentcfg/remote"
	"github.com/randalmurphal/agentcfg/repo"
	"github.com/randalmurphal/agentcfg/report"
)

// Manager ties the configuration store, repository backends, merge
// engine, and journal together behind one API. The CLI is a thin layer
// over it.
type Manager struct {
	store    *config.Store
	registry *merge.Registry
	runs     *journal.FileStore
	logger   *slog.Logger
	reporter report.Reporter
	agents   map[string]*agent.Agent
	repoOpts []repo.Option
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithReporter sets the run event sink. Defaults to NopReporter.
func WithReporter(r report.Reporter) ManagerOption {
	return func(m *Manager) { m.reporter = r }
}

// WithRegistry replaces the builtin merger registry.
func WithRegistry(registry *merge.Registry) ManagerOption {
	return func(m *Manager) { m.registry = registry }
}

// WithRepoOptions forwards options to repository construction, used in
// tests to inject a fake command runner.
func WithRepoOptions(opts ...repo.Option) ManagerOption {
	return func(m *Manager) { m.repoOpts = opts }
}

// WithAgents replaces the builtin agent table.
func WithAgents(agents map[string]*agent.Agent) ManagerOption {
	return func(m *Manager) { m.agents = agents }
}

// New creates a manager backed by the given configuration store.
func New(store *config.Store, opts ...ManagerOption) (*Manager, error) {
	runs, err := journal.NewFileStore(store.RunsDir())
	if err != nil {
		return nil, err
	}

	m := &Manager{
		store:    store,
		registry: merge.NewRegistry(),
		runs:     runs,
		logger:   slog.Default(),
		reporter: report.NopReporter{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.agents == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		m.agents = agent.Builtin(home)
	}
	return m, nil
}

// Store returns the configuration store.
func (m *Manager) Store() *config.Store { return m.store }

// Runs returns the journal store.
func (m *Manager) Runs() *journal.FileStore { return m.runs }

// Registry returns the merger registry.
func (m *Manager) Registry() *merge.Registry { return m.registry }

// Agents returns the known agent names, sorted.
func (m *Manager) Agents() []string {
	names := make([]string, 0, len(m.agents))
	for name := range m.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Agent returns the named agent definition.
func (m *Manager) Agent(name string) (*agent.Agent, error) {
	ag, ok := m.agents[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (known: %v)", name, m.Agents())
	}
	return ag, nil
}

// loadHierarchy loads the configuration and requires at least one
// hierarchy level.
func (m *Manager) loadHierarchy() (*config.Data, error) {
	data, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if len(data.Hierarchy) == 0 {
		return nil, fmt.Errorf("hierarchy is empty (run 'agentcfg config add')")
	}
	return data, nil
}

// repos constructs the repository backend for every hierarchy level.
// Git levels get a remote head checker when the host is recognized and
// a token (or anonymous GitHub access) is available.
func (m *Manager) repos(ctx context.Context, data *config.Data) ([]repo.Repo, error) {
	repos := make([]repo.Repo, 0, len(data.Hierarchy))
	for _, entry := range data.Hierarchy {
		opts := append([]repo.Option{repo.WithLogger(m.logger)}, m.repoOpts...)

		if entry.RepoType == "git" {
			if checker := m.checkerFor(ctx, entry.URL); checker != nil {
				opts = append(opts, repo.WithHeadChecker(checker))
			}
		}

		r, err := repo.New(entry, m.store.ReposDir(), opts...)
		if err != nil {
			return nil, err
		}
		repos = append(repos, r)
	}
	return repos, nil
}

// checkerFor builds a remote head checker for a URL, or nil when the
// host is unknown or credentials are missing. Staleness checks are an
// optimization; their absence only costs an extra pull.
func (m *Manager) checkerFor(ctx context.Context, url string) repo.HeadChecker {
	host, err := remote.HostOf(url)
	if err != nil {
		return nil
	}
	token, err := auth.TokenForHost(host)
	if err != nil && host == "github" {
		// No personal token. Try GitHub App credentials; failing that,
		// anonymous access still works for public repositories.
		if app, appErr := auth.GitHubAppFromEnv(); appErr == nil {
			if t, tokErr := app.InstallationToken(ctx); tokErr == nil {
				token = t
			} else {
				m.logger.Warn("GitHub App token exchange failed", "error", tokErr)
			}
		}
		err = nil
	}
	if err != nil {
		m.logger.Debug("no token for remote checker", "url", url, "error", err)
		return nil
	}
	checker, err := remote.Detect(url, token)
	if err != nil {
		return nil
	}
	return checker
}

// SyncStatus is the outcome of updating one hierarchy level.
type SyncStatus struct {
	Name    string
	URL     string
	Path    string
	Updated bool
	Err     error
}

// Sync brings every hierarchy level up to date. Per-level failures are
// recorded on the returned statuses, not propagated; a level that
// cannot be updated merges from its last materialized state.
func (m *Manager) Sync(ctx context.Context) ([]SyncStatus, error) {
	data, err := m.loadHierarchy()
	if err != nil {
		return nil, err
	}

	// SSH-backed levels hang on a credential prompt when no agent is
	// available; warn up front instead.
	for _, entry := range data.Hierarchy {
		if strings.HasPrefix(entry.URL, "git@") || strings.HasPrefix(entry.URL, "ssh://") {
			if err := auth.SSHAgentCheck(); err != nil {
				m.logger.Warn("ssh-agent not usable, SSH repositories may fail to update", "error", err)
			}
			break
		}
	}

	repos, err := m.repos(ctx, data)
	if err != nil {
		return nil, err
	}

	statuses := make([]SyncStatus, 0, len(repos))
	for _, r := range repos {
		if err := ctx.Err(); err != nil {
			return statuses, err
		}
		status := SyncStatus{Name: r.Name(), URL: r.URL(), Path: r.Path()}

		needs, err := r.NeedsUpdate(ctx)
		if err != nil {
			m.logger.Warn("staleness check failed", "repo", r.Name(), "error", err)
			needs = true
		}
		if needs {
			if err := r.Update(ctx); err != nil {
				m.logger.Warn("repository update failed", "repo", r.Name(), "error", err)
				status.Err = err
			} else {
				status.Updated = true
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Status reports each hierarchy level's local state without changing
// anything.
func (m *Manager) Status(ctx context.Context) ([]SyncStatus, error) {
	data, err := m.loadHierarchy()
	if err != nil {
		return nil, err
	}
	repos, err := m.repos(ctx, data)
	if err != nil {
		return nil, err
	}

	statuses := make([]SyncStatus, 0, len(repos))
	for _, r := range repos {
		status := SyncStatus{Name: r.Name(), URL: r.URL(), Path: r.Path()}
		if !r.Exists() {
			status.Err = fmt.Errorf("not materialized")
		} else if needs, err := r.NeedsUpdate(ctx); err == nil && needs {
			status.Updated = false
			status.Err = fmt.Errorf("behind remote")
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// MergeResult is the terminal state of a merge run.
type MergeResult = agent.Result

// MergeOptions configures a merge run.
type MergeOptions struct {
	// DryRun writes into a throwaway directory and reports what would
	// have been written.
	DryRun bool

	// OutputDir overrides the agent's output directory.
	OutputDir string
}

// Merge runs the full hierarchy merge for one agent and journals the
// run. The merge itself never fails; returned errors are setup
// problems (unknown agent, unreadable configuration).
func (m *Manager) Merge(ctx context.Context, agentName string, opts MergeOptions) (*agent.Result, error) {
	ag, err := m.Agent(agentName)
	if err != nil {
		return nil, err
	}
	data, err := m.loadHierarchy()
	if err != nil {
		return nil, err
	}
	repos, err := m.repos(ctx, data)
	if err != nil {
		return nil, err
	}

	// Copy the agent so output redirection does not mutate the table.
	run := *ag
	if opts.OutputDir != "" {
		run.OutputDir = opts.OutputDir
	}
	if opts.DryRun {
		tmp, err := os.MkdirTemp("", "agentcfg-dryrun-")
		if err != nil {
			return nil, fmt.Errorf("create dry run directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		run.OutputDir = tmp
	}

	runID, err := journal.NewRunID()
	if err != nil {
		return nil, err
	}

	sources := make([]agent.Source, 0, len(repos))
	for _, r := range repos {
		sources = append(sources, agent.Source{Name: r.Name(), Root: r.Path()})
	}

	acc := agent.NewAccumulator(&run, m.registry,
		agent.WithSettings(data.MergerSettings()),
		agent.WithLogger(m.logger),
		agent.WithReporter(m.reporter),
		agent.WithRunID(runID),
	)
	result := acc.Run(ctx, sources)

	if !opts.DryRun {
		if err := m.journalRun(result); err != nil {
			m.logger.Warn("could not journal run", "run_id", runID, "error", err)
		}
	}
	return result, nil
}

// journalRun converts a merge result into a journal record.
func (m *Manager) journalRun(result *agent.Result) error {
	status := journal.StatusCompleted
	if len(result.Written) == 0 {
		status = journal.StatusEmpty
	}

	files := make([]journal.FileRecord, 0, len(result.Written))
	for _, f := range result.Written {
		files = append(files, journal.FileRecord{
			Path:    f.RelPath,
			Sources: f.Sources,
			Bytes:   f.Bytes,
		})
	}

	return m.runs.Record(&journal.Run{
		ID:          result.RunID,
		Agent:       result.Agent,
		StartedAt:   result.Started,
		CompletedAt: result.Done,
		Status:      status,
		Files:       files,
		Warnings:    result.Warnings,
	})
}
