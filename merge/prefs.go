package merge

import (
	"log/slog"
	"sort"
	"strings"
)

// PrefType identifies the value type of a merger preference.
type PrefType string

// Preference value types.
const (
	PrefInt   PrefType = "int"
	PrefStr   PrefType = "str"
	PrefBool  PrefType = "bool"
	PrefFloat PrefType = "float"
)

// Preference describes one configurable setting of a merger: its type, its
// default, and optional constraints. Schemas are static per merger type and
// never mutated at runtime. They drive both settings validation and the
// CLI's `mergers prefs` output.
type Preference struct {
	Type        PrefType
	Default     any
	Description string

	// Min and Max bound numeric preferences. Values outside the range are
	// clamped, not rejected.
	Min *float64
	Max *float64

	// Choices restricts string preferences to a fixed set.
	Choices []string
}

// Schema maps preference names to their declarations.
type Schema map[string]Preference

// Settings holds user-supplied preference values for one merger, as loaded
// from the configuration store. Sparse: absent keys mean "use the default".
type Settings map[string]any

// Names returns the schema's preference names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// floatPtr is a convenience for declaring Min/Max bounds in schemas.
func floatPtr(f float64) *float64 { return &f }

// normalizeSettings validates settings against a schema and returns a copy
// safe to read values from. Unknown keys are dropped with a log entry,
// out-of-range numeric values are clamped with a notice, and wrong-typed
// values fall back to the preference default. Never fails: a merger must
// tolerate any settings map the config layer hands it.
func normalizeSettings(mergerName string, schema Schema, settings Settings, logger *slog.Logger) Settings {
	if len(settings) == 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	out := make(Settings, len(settings))
	for key, value := range settings {
		pref, ok := schema[key]
		if !ok {
			logger.Debug("ignoring unknown merger setting",
				"merger", mergerName,
				"setting", key,
				"valid", strings.Join(schema.Names(), ", "),
			)
			continue
		}
		normalized, ok := normalizeValue(pref, value)
		if !ok {
			logger.Warn("merger setting has wrong type, using default",
				"merger", mergerName,
				"setting", key,
				"value", value,
				"default", pref.Default,
			)
			continue
		}
		if normalized != value {
			logger.Warn("merger setting out of range, clamped",
				"merger", mergerName,
				"setting", key,
				"value", value,
				"clamped", normalized,
			)
		}
		out[key] = normalized
	}
	return out
}

// normalizeValue coerces value to the preference's type, clamping numerics
// to [Min, Max] and checking string choices. The second return is false
// when the value cannot be used at all.
func normalizeValue(pref Preference, value any) (any, bool) {
	switch pref.Type {
	case PrefInt:
		n, ok := toFloat(value)
		if !ok {
			return nil, false
		}
		return int(clamp(n, pref.Min, pref.Max)), true
	case PrefFloat:
		n, ok := toFloat(value)
		if !ok {
			return nil, false
		}
		return clamp(n, pref.Min, pref.Max), true
	case PrefBool:
		b, ok := value.(bool)
		if !ok {
			return nil, false
		}
		return b, true
	case PrefStr:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		if len(pref.Choices) > 0 && !containsString(pref.Choices, s) {
			return nil, false
		}
		return s, true
	}
	return nil, false
}

// toFloat accepts the numeric types that YAML and JSON decoding produce.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func clamp(n float64, min, max *float64) float64 {
	if min != nil && n < *min {
		return *min
	}
	if max != nil && n > *max {
		return *max
	}
	return n
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// intSetting reads an int preference from normalized settings, falling
// back to the schema default.
func intSetting(schema Schema, settings Settings, key string) int {
	if v, ok := settings[key]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	if d, ok := schema[key].Default.(int); ok {
		return d
	}
	return 0
}

// stringSetting reads a string preference from normalized settings,
// falling back to the schema default.
func stringSetting(schema Schema, settings Settings, key string) string {
	if v, ok := settings[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if d, ok := schema[key].Default.(string); ok {
		return d
	}
	return ""
}

// boolSetting reads a bool preference from normalized settings, falling
// back to the schema default.
func boolSetting(schema Schema, settings Settings, key string) bool {
	if v, ok := settings[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	if d, ok := schema[key].Default.(bool); ok {
		return d
	}
	return false
}
