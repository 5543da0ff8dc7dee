package merge

import "log/slog"

// Codec serializes and deserializes one dict-based format. Implementations
// exist for JSON and YAML; anything that round-trips to map[string]any can
// back a DictMerger.
type Codec interface {
	// Unmarshal parses content into a generic value.
	Unmarshal(content string) (any, error)

	// Marshal renders a generic value using the format options carried in
	// normalized settings.
	Marshal(v any, schema Schema, settings Settings) (string, error)
}

// DictMerger merges dict-based formats: deserialize both sides, combine via
// a Strategy, re-serialize. When either side fails to parse or is not a
// mapping, the merge degrades to last-wins (incoming is returned as-is).
type DictMerger struct {
	name   string
	codec  Codec
	schema Schema

	// Logger receives fallback warnings. Defaults to slog.Default.
	Logger *slog.Logger
}

// NewDictMerger builds a merger for a dict-based format. The schema should
// include the format's serialization preferences; the shared "strategy"
// preference is added automatically.
func NewDictMerger(name string, codec Codec, schema Schema) *DictMerger {
	s := make(Schema, len(schema)+1)
	for k, v := range schema {
		s[k] = v
	}
	s["strategy"] = Preference{
		Type:        PrefStr,
		Default:     "default",
		Description: "How maps and lists combine across sources",
		Choices:     []string{"default", "extend_lists", "replace"},
	}
	return &DictMerger{name: name, codec: codec, schema: s}
}

// Name implements Merger.
func (m *DictMerger) Name() string { return m.name }

// Preferences implements Merger.
func (m *DictMerger) Preferences() Schema { return m.schema }

// Merge implements Merger. The fallback path never fails: any parse or
// serialize error returns incoming unchanged.
func (m *DictMerger) Merge(base, incoming, source string, priorSources []string, settings Settings) string {
	logger := m.logger()
	normalized := normalizeSettings(m.name, m.schema, settings, logger)

	baseData, err := m.codec.Unmarshal(base)
	if err != nil {
		logger.Warn("base content failed to parse, using incoming as-is",
			"merger", m.name, "source", source, "error", err)
		return incoming
	}
	incomingData, err := m.codec.Unmarshal(incoming)
	if err != nil {
		logger.Warn("incoming content failed to parse, using it as-is",
			"merger", m.name, "source", source, "error", err)
		return incoming
	}

	baseMap, baseOK := baseData.(map[string]any)
	incomingMap, incomingOK := incomingData.(map[string]any)
	if !baseOK || !incomingOK {
		logger.Warn("content is not a mapping, replacing instead of merging",
			"merger", m.name, "source", source)
		return incoming
	}

	strategy := strategyFor(stringSetting(m.schema, normalized, "strategy"))
	merged := strategy.MergeMap(baseMap, incomingMap)

	out, err := m.codec.Marshal(merged, m.schema, normalized)
	if err != nil {
		logger.Warn("merged content failed to serialize, using incoming as-is",
			"merger", m.name, "source", source, "error", err)
		return incoming
	}
	return out
}

func (m *DictMerger) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
