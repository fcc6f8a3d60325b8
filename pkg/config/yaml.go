package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Pair is an ordered (from, to) string pair. In YAML it is written either as a
// two element sequence or as a mapping with "from" and "to" keys.
type Pair struct {
	From string
	To   string
}

// UnmarshalYAML accepts `["a", "b"]` and `{from: a, to: b}`.
func (p *Pair) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: decode pair: %w", node.Line, err)
		}
		if len(items) != 2 { //nolint:mnd // a pair has two sides
			return fmt.Errorf("line %d: pair needs exactly 2 items, got %d", node.Line, len(items))
		}
		p.From, p.To = items[0], items[1]
		return nil
	case yaml.MappingNode:
		var raw struct {
			From string `yaml:"from"`
			To   string `yaml:"to"`
		}
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("line %d: decode pair: %w", node.Line, err)
		}
		p.From, p.To = raw.From, raw.To
		return nil
	default:
		return fmt.Errorf("line %d: pair must be a sequence or a mapping", node.Line)
	}
}

// MarshalYAML writes the pair in its compact sequence form.
func (p Pair) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	node.Content = []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: p.From, Style: yaml.DoubleQuotedStyle},
		{Kind: yaml.ScalarNode, Value: p.To, Style: yaml.DoubleQuotedStyle},
	}
	return node, nil
}

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Paths = slices.Clone(c.Paths)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.FilenameToAlias = slices.Clone(c.FilenameToAlias)
	clone.AliasToFilename = slices.Clone(c.AliasToFilename)
	clone.IgnoreWordPairs = slices.Clone(c.IgnoreWordPairs)
	clone.Exclude = slices.Clone(c.Exclude)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.CaseSensitive = cloneBool(c.CaseSensitive)
	clone.FuzzyMentions = cloneBool(c.FuzzyMentions)
	clone.SkipHierarchyGroups = cloneBool(c.SkipHierarchyGroups)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = RuleConfig{Enabled: cloneBool(v.Enabled)}
		}
	}

	return &clone
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2 //nolint:mnd // two-space YAML is the project convention
}
