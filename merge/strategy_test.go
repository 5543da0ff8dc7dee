package merge

import (
	"reflect"
	"testing"
)

func TestDefaultStrategy_DeepMerge(t *testing.T) {
	base := map[string]any{"a": map[string]any{"b": 1, "c": 2}}
	incoming := map[string]any{"a": map[string]any{"c": 3, "e": 4}}

	got := DefaultStrategy{}.MergeMap(base, incoming)

	want := map[string]any{"a": map[string]any{"b": 1, "c": 3, "e": 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeMap = %v, want %v", got, want)
	}
}

func TestDefaultStrategy_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"a": map[string]any{"b": 1}}
	incoming := map[string]any{"a": map[string]any{"c": 2}}

	DefaultStrategy{}.MergeMap(base, incoming)

	if !reflect.DeepEqual(base, map[string]any{"a": map[string]any{"b": 1}}) {
		t.Errorf("base mutated: %v", base)
	}
	if !reflect.DeepEqual(incoming, map[string]any{"a": map[string]any{"c": 2}}) {
		t.Errorf("incoming mutated: %v", incoming)
	}
}

func TestDefaultStrategy_SequenceReplaces(t *testing.T) {
	got := DefaultStrategy{}.MergeSequence([]any{1, 2, 3}, []any{4})

	want := []any{4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeSequence = %v, want %v", got, want)
	}
}

func TestDefaultStrategy_ScalarReplaces(t *testing.T) {
	if got := (DefaultStrategy{}).MergeScalar("old", "new"); got != "new" {
		t.Errorf("MergeScalar = %v, want %q", got, "new")
	}
}

func TestExtendListStrategy_Dedup(t *testing.T) {
	got := ExtendListStrategy{}.MergeSequence([]any{1, 2, 3}, []any{3, 4, 5})

	want := []any{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeSequence = %v, want %v", got, want)
	}
}

func TestExtendListStrategy_DedupByValue(t *testing.T) {
	// Equal maps deduplicate even though they are distinct values.
	base := []any{map[string]any{"name": "a"}}
	incoming := []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}

	got := ExtendListStrategy{}.MergeSequence(base, incoming)

	want := []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeSequence = %v, want %v", got, want)
	}
}

func TestExtendListStrategy_NestedSequencesExtend(t *testing.T) {
	// Sequences nested inside maps route back through the strategy.
	base := map[string]any{"plugins": []any{"a", "b"}}
	incoming := map[string]any{"plugins": []any{"b", "c"}}

	got := ExtendListStrategy{}.MergeMap(base, incoming)

	want := map[string]any{"plugins": []any{"a", "b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeMap = %v, want %v", got, want)
	}
}

func TestExtendListStrategy_StillDeepMergesMaps(t *testing.T) {
	base := map[string]any{"nested": map[string]any{"keep": true}}
	incoming := map[string]any{"nested": map[string]any{"add": 1}}

	got := ExtendListStrategy{}.MergeMap(base, incoming)

	want := map[string]any{"nested": map[string]any{"keep": true, "add": 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeMap = %v, want %v", got, want)
	}
}

func TestReplaceMapStrategy_NoKeyPreservation(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	incoming := map[string]any{"c": 3}

	got := ReplaceMapStrategy{}.MergeMap(base, incoming)

	want := map[string]any{"c": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeMap = %v, want %v", got, want)
	}
}

func TestMergeMap_ShapeMismatchIncomingWins(t *testing.T) {
	// A map in base replaced by a scalar in incoming, and vice versa.
	base := map[string]any{"x": map[string]any{"a": 1}, "y": "scalar"}
	incoming := map[string]any{"x": "flat", "y": map[string]any{"b": 2}}

	got := DefaultStrategy{}.MergeMap(base, incoming)

	want := map[string]any{"x": "flat", "y": map[string]any{"b": 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeMap = %v, want %v", got, want)
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		name string
		want Strategy
	}{
		{"default", DefaultStrategy{}},
		{"extend_lists", ExtendListStrategy{}},
		{"replace", ReplaceMapStrategy{}},
		{"unknown", DefaultStrategy{}},
	}

	for _, tt := range tests {
		if got := strategyFor(tt.name); got != tt.want {
			t.Errorf("strategyFor(%q) = %T, want %T", tt.name, got, tt.want)
		}
	}
}
