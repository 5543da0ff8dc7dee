package merge

import (
	"strings"
	"testing"
)

func TestMarkdownMerger_DefaultSeparator(t *testing.T) {
	m := NewMarkdownMerger()

	got := m.Merge("# Rules", "# Override", "personal", []string{"org"}, nil)

	if !strings.Contains(got, "# Rules") || !strings.Contains(got, "# Override") {
		t.Errorf("merged markdown lost content:\n%s", got)
	}
	if !strings.Contains(got, "\n\n---\n") {
		t.Errorf("missing horizontal rule separator:\n%s", got)
	}
	if !strings.Contains(got, "'personal' overrides") {
		t.Errorf("missing override note attributing to personal:\n%s", got)
	}
	if strings.Count(got, "**Note to AI Agent:**") != 1 {
		t.Errorf("want exactly one override note:\n%s", got)
	}
}

func TestMarkdownMerger_BaseBeforeIncoming(t *testing.T) {
	m := NewMarkdownMerger()

	got := m.Merge("first", "second", "personal", []string{"org"}, nil)

	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Errorf("base does not precede incoming:\n%s", got)
	}
}

func TestMarkdownMerger_SeparatorStyles(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"horizontal_rule", "\n\n---\n"},
		{"heading", "## Configuration from: team"},
		{"comment", "<!-- Configuration from: team -->"},
	}

	m := NewMarkdownMerger()
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			got := m.Merge("a", "b", "team", []string{"org"}, Settings{"separator_style": tt.style})
			if !strings.Contains(got, tt.want) {
				t.Errorf("style %q output missing %q:\n%s", tt.style, tt.want, got)
			}
		})
	}
}

func TestMarkdownMerger_InvalidStyleFallsBackToDefault(t *testing.T) {
	m := NewMarkdownMerger()

	got := m.Merge("a", "b", "team", []string{"org"}, Settings{"separator_style": "sparkles"})

	if !strings.Contains(got, "\n\n---\n") {
		t.Errorf("invalid style did not fall back to horizontal rule:\n%s", got)
	}
}

func TestTextMerger_SourceMarker(t *testing.T) {
	m := NewTextMerger()

	got := m.Merge("base text", "new text", "team", []string{"org"}, nil)

	want := "base text\n\n# --- From: team ---\n\nnew text"
	if got != want {
		t.Errorf("Merge = %q, want %q", got, want)
	}
}

func TestCopyMerger_LastWins(t *testing.T) {
	m := NewCopyMerger()

	got := m.Merge("old content", "new content", "personal", []string{"org", "team"}, nil)

	if got != "new content" {
		t.Errorf("Merge = %q, want %q", got, "new content")
	}
}

func TestCopyMerger_FirstOccurrencePassesThrough(t *testing.T) {
	m := NewCopyMerger()

	got := m.Merge("", "content", "org", nil, nil)

	if got != "content" {
		t.Errorf("Merge = %q, want %q", got, "content")
	}
}

// Note on single-source identity: the accumulator stores a lone source's
// content without calling Merge at all, so no merger gets a chance to add
// markers to a file seen once. Markdown and text mergers append markers on
// every Merge call by design; that is only observable from the second
// contributing source onward.

func TestMergerNames(t *testing.T) {
	tests := []struct {
		m    Merger
		want string
	}{
		{NewJSONMerger(), "json"},
		{NewYAMLMerger(), "yaml"},
		{NewMarkdownMerger(), "markdown"},
		{NewTextMerger(), "text"},
		{NewCopyMerger(), "copy"},
	}

	for _, tt := range tests {
		if got := tt.m.Name(); got != tt.want {
			t.Errorf("Name = %q, want %q", got, tt.want)
		}
	}
}

func TestMergerPreferences(t *testing.T) {
	if prefs := NewJSONMerger().Preferences(); prefs["indent"].Default != 2 {
		t.Errorf("json indent default = %v, want 2", prefs["indent"].Default)
	}
	if prefs := NewYAMLMerger().Preferences(); prefs["width"].Default != 120 {
		t.Errorf("yaml width default = %v, want 120", prefs["width"].Default)
	}
	if prefs := NewTextMerger().Preferences(); len(prefs) != 0 {
		t.Errorf("text merger declares preferences: %v", prefs)
	}
	if prefs := NewCopyMerger().Preferences(); len(prefs) != 0 {
		t.Errorf("copy merger declares preferences: %v", prefs)
	}
}
