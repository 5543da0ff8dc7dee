package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/agentcfg/config"
	"github.com/randalmurphal/agentcfg/testutil"
)

type fakeChecker struct {
	sha string
	err error
}

func (c *fakeChecker) HeadSHA(ctx context.Context, url string) (string, error) {
	return c.sha, c.err
}

// materializedGitRepo creates an on-disk directory with a .git marker so
// that Exists reports true without running real git.
func materializedGitRepo(t *testing.T, opts ...Option) *GitRepo {
	t.Helper()

	reposDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(reposDir, "org", ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := New(config.HierarchyEntry{
		Name:     "org",
		URL:      "https://example.com/org.git",
		RepoType: "git",
	}, reposDir, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return r.(*GitRepo)
}

func TestNew_BackendSelection(t *testing.T) {
	reposDir := t.TempDir()

	git, err := New(config.HierarchyEntry{Name: "org", URL: "https://example.com/org.git", RepoType: "git"}, reposDir)
	if err != nil {
		t.Fatalf("New git: %v", err)
	}
	if _, ok := git.(*GitRepo); !ok {
		t.Errorf("git entry produced %T, want *GitRepo", git)
	}
	if got := git.Path(); got != filepath.Join(reposDir, "org") {
		t.Errorf("git path = %q, want under repos dir", got)
	}

	local, err := New(config.HierarchyEntry{Name: "me", URL: "file:///tmp/me", RepoType: "file"}, reposDir)
	if err != nil {
		t.Fatalf("New file: %v", err)
	}
	if got := local.Path(); got != "/tmp/me" {
		t.Errorf("local path = %q, want /tmp/me", got)
	}

	_, err = New(config.HierarchyEntry{Name: "x", URL: "u", RepoType: "svn"}, reposDir)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("unsupported type error = %v, want ErrUnsupportedType", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		url  string
		want string // first detected type, "" for unrecognized
	}{
		{"file:///home/me/config", "file"},
		{"/home/me/config", "file"},
		{"./config", "file"},
		{"git@github.com:example/cfg.git", "git"},
		{"ssh://git@host/example/cfg.git", "git"},
		{"git://host/example/cfg.git", "git"},
		{"https://github.com/example/cfg", "git"},
		{"https://example.com/archive.git", "git"},
		{"https://example.com/not-a-repo", ""},
	}

	for _, tt := range tests {
		got := Detect(tt.url)
		if tt.want == "" {
			if len(got) != 0 {
				t.Errorf("Detect(%q) = %v, want none", tt.url, got)
			}
			continue
		}
		if len(got) == 0 || got[0] != tt.want {
			t.Errorf("Detect(%q) = %v, want leading %q", tt.url, got, tt.want)
		}
	}
}

func TestLocalRepo(t *testing.T) {
	dir := t.TempDir()
	r, err := New(config.HierarchyEntry{Name: "me", URL: "file://" + dir, RepoType: "file"}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if !r.Exists() {
		t.Error("Exists = false for present directory")
	}
	if err := r.Update(context.Background()); err != nil {
		t.Errorf("Update returned error: %v", err)
	}
	if needs, _ := r.NeedsUpdate(context.Background()); needs {
		t.Error("local directories never need updates")
	}
}

func TestLocalRepo_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	r, err := New(config.HierarchyEntry{Name: "me", URL: "file://" + missing, RepoType: "file"}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if r.Exists() {
		t.Error("Exists = true for missing directory")
	}
	if err := r.Update(context.Background()); !errors.Is(err, ErrNotMaterialized) {
		t.Errorf("Update error = %v, want ErrNotMaterialized", err)
	}
}

func TestGitRepo_UpdateClonesWhenMissing(t *testing.T) {
	runner := &testutil.FakeRunner{}
	reposDir := t.TempDir()
	r, err := New(config.HierarchyEntry{
		Name:     "org",
		URL:      "https://example.com/org.git",
		RepoType: "git",
	}, reposDir, WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Update(context.Background()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !runner.CalledWith("clone") {
		t.Errorf("missing repo did not clone; calls: %v", runner.Calls)
	}
	if runner.CalledWith("pull") {
		t.Errorf("missing repo should not pull; calls: %v", runner.Calls)
	}
}

func TestGitRepo_UpdateRefusesNonRepoDirectory(t *testing.T) {
	runner := &testutil.FakeRunner{}
	reposDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(reposDir, "org", "stuff"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := New(config.HierarchyEntry{
		Name:     "org",
		URL:      "https://example.com/org.git",
		RepoType: "git",
	}, reposDir, WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Update(context.Background()); !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("Update error = %v, want ErrNotGitRepo", err)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("no git command should run; calls: %v", runner.Calls)
	}
}

func TestGitRepo_UpdatePullsWhenPresent(t *testing.T) {
	runner := &testutil.FakeRunner{Outputs: map[string]string{
		"remote": "https://example.com/org.git",
	}}
	r := materializedGitRepo(t, WithRunner(runner))

	if err := r.Update(context.Background()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !runner.CalledWith("pull") {
		t.Errorf("present repo did not pull; calls: %v", runner.Calls)
	}
	if runner.CalledWith("clone") {
		t.Errorf("present repo should not clone; calls: %v", runner.Calls)
	}
}

func TestGitRepo_UpdatePullFailure(t *testing.T) {
	runner := &testutil.FakeRunner{Errs: map[string]error{
		"pull": errors.New("could not resolve host"),
	}}
	r := materializedGitRepo(t, WithRunner(runner))

	err := r.Update(context.Background())
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Op != "pull" {
		t.Errorf("Update error = %v, want pull Error", err)
	}
}

func TestGitRepo_NeedsUpdate(t *testing.T) {
	sha := "abc123def456"

	t.Run("missing repo", func(t *testing.T) {
		r, err := New(config.HierarchyEntry{Name: "org", URL: "u", RepoType: "git"},
			t.TempDir(), WithRunner(&testutil.FakeRunner{}))
		if err != nil {
			t.Fatal(err)
		}
		if needs, _ := r.NeedsUpdate(context.Background()); !needs {
			t.Error("missing repo should need update")
		}
	})

	t.Run("no checker", func(t *testing.T) {
		r := materializedGitRepo(t, WithRunner(&testutil.FakeRunner{}))
		if needs, _ := r.NeedsUpdate(context.Background()); !needs {
			t.Error("without a checker, update should be assumed")
		}
	})

	t.Run("heads match", func(t *testing.T) {
		runner := &testutil.FakeRunner{Outputs: map[string]string{"rev-parse": sha}}
		r := materializedGitRepo(t, WithRunner(runner), WithHeadChecker(&fakeChecker{sha: sha}))
		needs, err := r.NeedsUpdate(context.Background())
		if err != nil {
			t.Fatalf("NeedsUpdate returned error: %v", err)
		}
		if needs {
			t.Error("matching heads should not need update")
		}
	})

	t.Run("abbreviated local head matches", func(t *testing.T) {
		runner := &testutil.FakeRunner{Outputs: map[string]string{"rev-parse": sha[:7]}}
		r := materializedGitRepo(t, WithRunner(runner), WithHeadChecker(&fakeChecker{sha: sha}))
		if needs, _ := r.NeedsUpdate(context.Background()); needs {
			t.Error("abbreviated matching head should not need update")
		}
	})

	t.Run("heads differ", func(t *testing.T) {
		runner := &testutil.FakeRunner{Outputs: map[string]string{"rev-parse": sha}}
		r := materializedGitRepo(t, WithRunner(runner), WithHeadChecker(&fakeChecker{sha: "fff000"}))
		if needs, _ := r.NeedsUpdate(context.Background()); !needs {
			t.Error("diverged heads should need update")
		}
	})

	t.Run("checker failure degrades to update", func(t *testing.T) {
		runner := &testutil.FakeRunner{Outputs: map[string]string{"rev-parse": sha}}
		r := materializedGitRepo(t, WithRunner(runner), WithHeadChecker(&fakeChecker{err: errors.New("rate limited")}))
		needs, err := r.NeedsUpdate(context.Background())
		if err != nil {
			t.Fatalf("checker failure should not be fatal: %v", err)
		}
		if !needs {
			t.Error("unreachable remote should assume update needed")
		}
	})
}

func TestGitRepo_HeadCommit(t *testing.T) {
	runner := &testutil.FakeRunner{Outputs: map[string]string{"rev-parse": "abc123"}}
	r := materializedGitRepo(t, WithRunner(runner))

	sha, err := r.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit returned error: %v", err)
	}
	if sha != "abc123" {
		t.Errorf("HeadCommit = %q, want abc123", sha)
	}
}

func TestGitRepo_UpdateCancelled(t *testing.T) {
	runner := &testutil.FakeRunner{}
	r := materializedGitRepo(t, WithRunner(runner))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Update(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Update error = %v, want context.Canceled", err)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("cancelled update still ran commands: %v", runner.Calls)
	}
}

func TestExecRunner_Run(t *testing.T) {
	runner := NewExecRunner()

	out, err := runner.Run("", "echo", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello" {
		t.Errorf("output = %q, want %q", out, "hello")
	}

	_, err = runner.Run("", "ls", filepath.Join(t.TempDir(), "does-not-exist"))
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("error should be CommandError, got %T", err)
	}
}

func TestCommandError_Error(t *testing.T) {
	withOutput := &CommandError{Command: "git", Output: "fatal: not a git repository", Err: errors.New("exit status 128")}
	if got := withOutput.Error(); got != "fatal: not a git repository" {
		t.Errorf("Error() = %q, want output text", got)
	}

	withoutOutput := &CommandError{Command: "git", Err: errors.New("exit status 1")}
	if got := withoutOutput.Error(); got != "exit status 1" {
		t.Errorf("Error() = %q, want underlying error text", got)
	}

	bare := &CommandError{Command: "git"}
	if got := bare.Error(); got != "command failed" {
		t.Errorf("Error() = %q, want %q", got, "command failed")
	}
}
