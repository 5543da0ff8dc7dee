package merge

import "reflect"

// Strategy defines how structured values combine when two sources provide
// the same key. All methods are pure: no I/O, no mutation of inputs.
//
// Implementations only need to override the behavior they change;
// mergeValueWith routes nested values back through the full strategy, so
// a strategy that customizes sequence handling still participates in deep
// map merges.
type Strategy interface {
	// MergeMap combines two mappings. The incoming map's entries take
	// precedence over base's at any point of conflict.
	MergeMap(base, incoming map[string]any) map[string]any

	// MergeSequence combines two sequences.
	MergeSequence(base, incoming []any) []any

	// MergeScalar combines two scalar values.
	MergeScalar(base, incoming any) any
}

// DefaultStrategy deep-merges maps, replaces sequences, and replaces
// scalars. This is the behavior most configuration formats want: nested
// settings from a lower priority source survive unless a higher priority
// source overrides them.
type DefaultStrategy struct{}

// MergeMap implements Strategy with a recursive deep merge.
func (DefaultStrategy) MergeMap(base, incoming map[string]any) map[string]any {
	return mergeMapWith(DefaultStrategy{}, base, incoming)
}

// MergeSequence implements Strategy. The incoming sequence replaces base.
func (DefaultStrategy) MergeSequence(base, incoming []any) []any {
	return incoming
}

// MergeScalar implements Strategy. The incoming value replaces base.
func (DefaultStrategy) MergeScalar(base, incoming any) any {
	return incoming
}

// ExtendListStrategy behaves like DefaultStrategy except sequences are
// extended: the result is base's elements followed by incoming elements
// not already present, preserving relative order. Duplicates are detected
// by value, first seen wins.
type ExtendListStrategy struct{}

// MergeMap implements Strategy with a recursive deep merge. Nested
// sequences are extended rather than replaced.
func (ExtendListStrategy) MergeMap(base, incoming map[string]any) map[string]any {
	return mergeMapWith(ExtendListStrategy{}, base, incoming)
}

// MergeSequence implements Strategy by appending incoming elements that
// are not already present in base.
func (ExtendListStrategy) MergeSequence(base, incoming []any) []any {
	result := make([]any, len(base), len(base)+len(incoming))
	copy(result, base)
	for _, item := range incoming {
		if !containsValue(result, item) {
			result = append(result, item)
		}
	}
	return result
}

// MergeScalar implements Strategy. The incoming value replaces base.
func (ExtendListStrategy) MergeScalar(base, incoming any) any {
	return incoming
}

// ReplaceMapStrategy behaves like DefaultStrategy except maps are replaced
// wholesale: no recursion, no key preservation from base.
type ReplaceMapStrategy struct{}

// MergeMap implements Strategy. The incoming map replaces base entirely.
func (ReplaceMapStrategy) MergeMap(base, incoming map[string]any) map[string]any {
	return incoming
}

// MergeSequence implements Strategy. The incoming sequence replaces base.
func (ReplaceMapStrategy) MergeSequence(base, incoming []any) []any {
	return incoming
}

// MergeScalar implements Strategy. The incoming value replaces base.
func (ReplaceMapStrategy) MergeScalar(base, incoming any) any {
	return incoming
}

// mergeMapWith merges incoming into a copy of base, routing nested values
// through the given strategy. Keys only present in one side carry over
// unchanged; keys present in both dispatch on the value shapes.
func mergeMapWith(s Strategy, base, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(incoming))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range incoming {
		existing, ok := merged[k]
		if !ok {
			merged[k] = v
			continue
		}
		merged[k] = mergeValueWith(s, existing, v)
	}
	return merged
}

// mergeValueWith dispatches on the shapes of base and incoming: two maps
// merge via MergeMap, two sequences via MergeSequence, anything else via
// MergeScalar (a shape mismatch counts as a scalar conflict).
func mergeValueWith(s Strategy, base, incoming any) any {
	if bm, ok := base.(map[string]any); ok {
		if im, ok := incoming.(map[string]any); ok {
			return s.MergeMap(bm, im)
		}
	}
	if bs, ok := base.([]any); ok {
		if is, ok := incoming.([]any); ok {
			return s.MergeSequence(bs, is)
		}
	}
	return s.MergeScalar(base, incoming)
}

// containsValue reports whether list contains item, comparing by value so
// that equal maps and sequences deduplicate too.
func containsValue(list []any, item any) bool {
	for _, v := range list {
		if reflect.DeepEqual(v, item) {
			return true
		}
	}
	return false
}

// strategyFor maps a strategy name from merger settings to an
// implementation. Unknown names fall back to the default strategy;
// settings validation has already warned about them.
func strategyFor(name string) Strategy {
	switch name {
	case "extend_lists":
		return ExtendListStrategy{}
	case "replace":
		return ReplaceMapStrategy{}
	default:
		return DefaultStrategy{}
	}
}
