package goldmark

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrFrontmatter is returned when the YAML frontmatter block does not parse.
var ErrFrontmatter = errors.New("invalid frontmatter")

// logseqProperty matches a "key:: value" page property line.
//
//nolint:gochecknoglobals // compiled once
var logseqProperty = regexp.MustCompile(`^\s*([\w-]+)::[ \t]*(.*?)\s*$`)

// metadata is what the parser extracts from the head of a page.
type metadata struct {
	aliases []string

	// yamlEnd is the byte offset just past the YAML block, or 0 when absent.
	yamlEnd int

	// propsEnd is the offset just past the property lines, or yamlEnd when none.
	propsEnd int
}

// readMetadata reads a leading YAML block delimited by "---" lines and any
// "key:: value" property lines that follow it.
func readMetadata(content []byte) (metadata, error) {
	var meta metadata

	if block, end, ok := yamlBlock(content); ok {
		aliases, err := yamlAliases(block)
		if err != nil {
			return meta, err
		}
		meta.aliases = aliases
		meta.yamlEnd = end
	}

	meta.propsEnd = meta.yamlEnd
	for pos := meta.yamlEnd; pos < len(content); {
		line, next := nextLine(content, pos)
		m := logseqProperty.FindSubmatch(line)
		if m == nil {
			break
		}
		if strings.EqualFold(string(m[1]), "alias") || strings.EqualFold(string(m[1]), "aliases") {
			meta.aliases = append(meta.aliases, splitAliases(string(m[2]))...)
		}
		pos = next
		meta.propsEnd = next
	}

	meta.aliases = dedupe(meta.aliases)
	return meta, nil
}

// yamlBlock returns the text between the opening and closing delimiter lines
// and the offset just past the closing line.
func yamlBlock(content []byte) ([]byte, int, bool) {
	first, pos := nextLine(content, 0)
	if string(bytes.TrimRight(first, "\r")) != "---" {
		return nil, 0, false
	}
	start := pos
	for pos < len(content) {
		line, next := nextLine(content, pos)
		switch string(bytes.TrimRight(line, " \t\r")) {
		case "---", "...":
			return content[start:pos], next, true
		}
		pos = next
	}
	return nil, 0, false
}

func nextLine(content []byte, pos int) ([]byte, int) {
	if i := bytes.IndexByte(content[pos:], '\n'); i >= 0 {
		return content[pos : pos+i], pos + i + 1
	}
	return content[pos:], len(content)
}

func yamlAliases(block []byte) ([]string, error) {
	var head struct {
		Alias   yaml.Node `yaml:"alias"`
		Aliases yaml.Node `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(block, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrontmatter, err)
	}

	var out []string
	for _, node := range []*yaml.Node{&head.Alias, &head.Aliases} {
		switch node.Kind {
		case yaml.ScalarNode:
			out = append(out, splitAliases(node.Value)...)
		case yaml.SequenceNode:
			for _, item := range node.Content {
				if item.Kind == yaml.ScalarNode {
					out = append(out, cleanAlias(item.Value))
				}
			}
		case 0, yaml.DocumentNode, yaml.MappingNode, yaml.AliasNode:
		}
	}
	return out, nil
}

// splitAliases splits a comma separated alias list.
func splitAliases(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if alias := cleanAlias(part); alias != "" {
			out = append(out, alias)
		}
	}
	return out
}

func cleanAlias(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") {
		s = s[2 : len(s)-2]
	}
	return strings.TrimSpace(strings.Trim(s, `"'`))
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
