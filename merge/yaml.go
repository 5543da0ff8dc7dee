package merge

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCodec implements Codec for YAML content.
type yamlCodec struct{}

func (yamlCodec) Unmarshal(content string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(content), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (yamlCodec) Marshal(v any, schema Schema, settings Settings) (string, error) {
	indent := intSetting(schema, settings, "indent")

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// NewYAMLMerger returns the merger for .yaml/.yml files: deep merge with
// configurable indentation.
//
// The width preference is validated and clamped for configuration
// compatibility; the yaml.v3 encoder wraps long lines at its own
// fixed width.
func NewYAMLMerger() *DictMerger {
	return NewDictMerger("yaml", yamlCodec{}, Schema{
		"indent": {
			Type:        PrefInt,
			Default:     2,
			Description: "Number of spaces for YAML indentation",
			Min:         floatPtr(2),
			Max:         floatPtr(8),
		},
		"width": {
			Type:        PrefInt,
			Default:     120,
			Description: "Maximum line width for YAML output",
			Min:         floatPtr(60),
			Max:         floatPtr(200),
		},
	})
}
