package merge

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeJSON(t *testing.T, content string) map[string]any {
	t.Helper()
	var v map[string]any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		t.Fatalf("result is not valid JSON: %v\n%s", err, content)
	}
	return v
}

func decodeYAML(t *testing.T, content string) map[string]any {
	t.Helper()
	var v map[string]any
	if err := yaml.Unmarshal([]byte(content), &v); err != nil {
		t.Fatalf("result is not valid YAML: %v\n%s", err, content)
	}
	return v
}

func TestJSONMerger_DeepMerge(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(
		`{"a": {"b": 1, "c": 2}}`,
		`{"a": {"c": 3, "e": 4}}`,
		"team", []string{"org"}, nil,
	)

	want := map[string]any{"a": map[string]any{"b": float64(1), "c": float64(3), "e": float64(4)}}
	if merged := decodeJSON(t, got); !reflect.DeepEqual(merged, want) {
		t.Errorf("merged = %v, want %v", merged, want)
	}
}

func TestJSONMerger_HigherPriorityWins(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(
		`{"theme": "org-default"}`,
		`{"theme": "personal-choice"}`,
		"personal", []string{"org"}, nil,
	)

	if merged := decodeJSON(t, got); merged["theme"] != "personal-choice" {
		t.Errorf("theme = %v, want %q", merged["theme"], "personal-choice")
	}
}

func TestJSONMerger_MalformedIncomingFallsBackToCopy(t *testing.T) {
	m := NewJSONMerger()

	incoming := `{not json at all`
	got := m.Merge(`{"valid": true}`, incoming, "team", []string{"org"}, nil)

	if got != incoming {
		t.Errorf("Merge = %q, want incoming unchanged", got)
	}
}

func TestJSONMerger_MalformedBaseFallsBackToCopy(t *testing.T) {
	m := NewJSONMerger()

	incoming := `{"valid": true}`
	got := m.Merge(`{broken`, incoming, "team", []string{"org"}, nil)

	if got != incoming {
		t.Errorf("Merge = %q, want incoming unchanged", got)
	}
}

func TestJSONMerger_NonMappingFallsBackToCopy(t *testing.T) {
	m := NewJSONMerger()

	incoming := `[1, 2, 3]`
	got := m.Merge(`{"a": 1}`, incoming, "team", []string{"org"}, nil)

	if got != incoming {
		t.Errorf("Merge = %q, want incoming unchanged", got)
	}
}

func TestJSONMerger_IndentSetting(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(`{"a": 1}`, `{"b": 2}`, "team", []string{"org"}, Settings{"indent": 4})

	if !strings.Contains(got, "\n    \"") {
		t.Errorf("output not indented with 4 spaces:\n%s", got)
	}
}

func TestJSONMerger_IndentZeroIsCompact(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(`{"a": 1}`, `{"b": 2}`, "team", []string{"org"}, Settings{"indent": 0})

	if strings.Contains(got, "\n") {
		t.Errorf("indent 0 output contains newlines:\n%s", got)
	}
}

func TestJSONMerger_ExtendListsStrategySetting(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(
		`{"plugins": ["a", "b"]}`,
		`{"plugins": ["b", "c"]}`,
		"team", []string{"org"},
		Settings{"strategy": "extend_lists"},
	)

	want := []any{"a", "b", "c"}
	if merged := decodeJSON(t, got); !reflect.DeepEqual(merged["plugins"], want) {
		t.Errorf("plugins = %v, want %v", merged["plugins"], want)
	}
}

func TestJSONMerger_ReplaceStrategySetting(t *testing.T) {
	m := NewJSONMerger()

	got := m.Merge(
		`{"a": {"keep": 1}}`,
		`{"a": {"only": 2}}`,
		"team", []string{"org"},
		Settings{"strategy": "replace"},
	)

	want := map[string]any{"only": float64(2)}
	if merged := decodeJSON(t, got); !reflect.DeepEqual(merged["a"], want) {
		t.Errorf("a = %v, want %v", merged["a"], want)
	}
}

func TestYAMLMerger_DeepMerge(t *testing.T) {
	m := NewYAMLMerger()

	got := m.Merge(
		"theme: org-default\nnested:\n  keep: true\n",
		"theme: personal-choice\n",
		"personal", []string{"org"}, nil,
	)

	merged := decodeYAML(t, got)
	if merged["theme"] != "personal-choice" {
		t.Errorf("theme = %v, want %q", merged["theme"], "personal-choice")
	}
	nested, ok := merged["nested"].(map[string]any)
	if !ok || nested["keep"] != true {
		t.Errorf("nested = %v, want keep: true preserved", merged["nested"])
	}
}

func TestYAMLMerger_MalformedIncomingFallsBackToCopy(t *testing.T) {
	m := NewYAMLMerger()

	incoming := "key: [1, 2\n"
	got := m.Merge("valid: true\n", incoming, "team", []string{"org"}, nil)

	if got != incoming {
		t.Errorf("Merge = %q, want incoming unchanged", got)
	}
}

func TestYAMLMerger_ScalarDocumentFallsBackToCopy(t *testing.T) {
	m := NewYAMLMerger()

	incoming := "just a string\n"
	got := m.Merge("valid: true\n", incoming, "team", []string{"org"}, nil)

	if got != incoming {
		t.Errorf("Merge = %q, want incoming unchanged", got)
	}
}

func TestDictMerger_UnknownSettingIgnored(t *testing.T) {
	m := NewJSONMerger()

	// Must not fail or alter behavior.
	got := m.Merge(`{"a": 1}`, `{"b": 2}`, "team", []string{"org"}, Settings{"wat": 99})

	merged := decodeJSON(t, got)
	if merged["a"] != float64(1) || merged["b"] != float64(2) {
		t.Errorf("merged = %v, want both keys present", merged)
	}
}

func TestDictMerger_Determinism(t *testing.T) {
	m := NewJSONMerger()

	base := `{"z": 1, "a": {"x": true}, "m": [1, 2]}`
	incoming := `{"a": {"y": false}, "k": "v"}`

	first := m.Merge(base, incoming, "team", []string{"org"}, nil)
	for i := 0; i < 10; i++ {
		if got := m.Merge(base, incoming, "team", []string{"org"}, nil); got != first {
			t.Fatalf("merge output varies between runs:\n%s\nvs\n%s", first, got)
		}
	}
}
