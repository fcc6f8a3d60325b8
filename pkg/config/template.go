package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every finding kind under "rules".
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// RuleInfo contains finding kind metadata for template generation.
type RuleInfo struct {
	Name        string
	Description string
	Enabled     bool
}

// RuleInfoProvider is a function that returns finding kind information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for kind info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.WriteString(`# Directories scanned when no paths are given on the command line
paths:
  - "."

# Markdown dialect: commonmark or gfm
flavor: gfm

# File patterns to skip during discovery (doublestar globs)
# ignore:
#   - "logseq/bak/**"
#   - "**/.trash/**"

# Widest word n-gram compared between page names
ngram_size: 2

# Hard breaks in a name; n-grams never cross them
boundary_pattern: "[,./_]"

# Separators that split a name into words
filename_spacing_pattern: "___|__|-|_|\\s"

# Minimum similarity score reported as similar_files
filename_match_threshold: 0

# Ordered substitutions turning a file name into its alias form
filename_to_alias:
  - ["___", "/"]

# Ordered substitutions turning a link target into a file name
alias_to_filename:
  - ["/", "___"]

# Compare names case sensitively
# case_sensitive: false

# Name pairs never reported as similar
# ignore_word_pairs:
#   - ["journal", "journals"]

# Finding identifiers to suppress (globs)
# exclude:
#   - "duplicate_alias:*"
#   - "unlinked_text:daily*"

# Also report fuzzy (non exact) unlinked mentions
# fuzzy_mentions: false

# Never compare a page with its hierarchy children (foo vs foo___bar)
# skip_hierarchy_groups: true
`)

	if !opts.Full {
		return buf.Bytes(), nil
	}

	buf.WriteString("\n# Per-kind switches\nrules:\n")

	rules := getRuleInfos()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", rule.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
	}

	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered finding kinds.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()

	pairs := func(ps []Pair) [][]string {
		out := make([][]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, []string{p.From, p.To})
		}
		return out
	}

	rules := make(map[string]any)
	for _, r := range getRuleInfos() {
		rules[r.Name] = map[string]any{"enabled": r.Enabled}
	}

	cfg := map[string]any{
		"paths":                    defaults.Paths,
		"extensions":               defaults.Extensions,
		"flavor":                   defaults.Flavor,
		"ngram_size":               defaults.NgramSize,
		"boundary_pattern":         defaults.BoundaryPattern,
		"filename_spacing_pattern": defaults.FilenameSpacingPattern,
		"filename_match_threshold": defaults.FilenameMatchThreshold,
		"filename_to_alias":        pairs(defaults.FilenameToAlias),
		"alias_to_filename":        pairs(defaults.AliasToFilename),
		"ignore_word_pairs":        [][]string{},
		"exclude":                  []string{},
		"rules":                    rules,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdlinker configuration
# See: https://github.com/yaklabco/mdlinker`
}
