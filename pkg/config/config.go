// Package config defines core configuration types for mdlinker.
// These types are pure data structures with no dependency on the loaders that fill them.
package config

// RuleConfig holds per-kind configuration options.
type RuleConfig struct {
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`
}

// OutputFormat specifies the output format for findings.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatTable    OutputFormat = "table"
	FormatJSON     OutputFormat = "json"
	FormatSARIF    OutputFormat = "sarif"
	FormatMarkdown OutputFormat = "markdown"
	FormatSummary  OutputFormat = "summary"
)

// Default pattern and substitution values. They follow the Logseq page naming
// convention, where a hierarchy separator "/" is stored on disk as "___".
const (
	DefaultNgramSize              = 2
	DefaultBoundaryPattern        = `[,./_]`
	DefaultFilenameSpacingPattern = `___|__|-|_|\s`
	DefaultFilenameMatchThreshold = 0
)

// Config is the root configuration structure for mdlinker.
type Config struct {
	// Paths are the directories or files scanned when none are given on the command line.
	Paths []string `mapstructure:"paths" yaml:"paths"`

	// Extensions lists the file extensions treated as pages.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Flavor selects the markdown dialect: "commonmark" or "gfm".
	Flavor string `mapstructure:"flavor" yaml:"flavor"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// NgramSize is the widest n-gram generated from a title or alias.
	NgramSize int `mapstructure:"ngram_size" yaml:"ngram_size"`

	// BoundaryPattern marks hard breaks that n-grams never cross.
	BoundaryPattern string `mapstructure:"boundary_pattern" yaml:"boundary_pattern"`

	// FilenameSpacingPattern splits titles and aliases into words.
	FilenameSpacingPattern string `mapstructure:"filename_spacing_pattern" yaml:"filename_spacing_pattern"`

	// FilenameMatchThreshold is the minimum similarity score that gets reported.
	FilenameMatchThreshold int `mapstructure:"filename_match_threshold" yaml:"filename_match_threshold"`

	// FilenameToAlias rewrites a title into its alias form, applied in order.
	FilenameToAlias []Pair `mapstructure:"filename_to_alias" yaml:"filename_to_alias"`

	// AliasToFilename rewrites an alias or link target into a title, applied in order.
	AliasToFilename []Pair `mapstructure:"alias_to_filename" yaml:"alias_to_filename"`

	// CaseSensitive disables case folding during normalization.
	CaseSensitive *bool `mapstructure:"case_sensitive" yaml:"case_sensitive,omitempty"`

	// IgnoreWordPairs are unordered pairs never reported as similar.
	IgnoreWordPairs []Pair `mapstructure:"ignore_word_pairs" yaml:"ignore_word_pairs"`

	// Exclude contains glob patterns matched against finding identifiers.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// FuzzyMentions enables fuzzy matching in the unlinked mention scan.
	FuzzyMentions *bool `mapstructure:"fuzzy_mentions" yaml:"fuzzy_mentions,omitempty"`

	// SkipHierarchyGroups suppresses similarity between a page and its hierarchy children.
	SkipHierarchyGroups *bool `mapstructure:"skip_hierarchy_groups" yaml:"skip_hierarchy_groups,omitempty"`

	// Rules contains per-kind configuration keyed by kind name.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableRules contains kind names to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules contains kind names to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Paths:                  []string{"."},
		Extensions:             []string{".md", ".markdown"},
		Flavor:                 "gfm",
		Ignore:                 nil,
		NgramSize:              DefaultNgramSize,
		BoundaryPattern:        DefaultBoundaryPattern,
		FilenameSpacingPattern: DefaultFilenameSpacingPattern,
		FilenameMatchThreshold: DefaultFilenameMatchThreshold,
		FilenameToAlias:        []Pair{{From: "___", To: "/"}},
		AliasToFilename:        []Pair{{From: "/", To: "___"}},
		CaseSensitive:          Bool(false),
		IgnoreWordPairs:        nil,
		Exclude:                nil,
		FuzzyMentions:          Bool(false),
		SkipHierarchyGroups:    Bool(true),
		Rules:                  make(map[string]RuleConfig),
		Format:                 FormatText,
		Jobs:                   0, // 0 means use GOMAXPROCS
	}
}

// IsCaseSensitive reports whether normalization keeps case.
func (c *Config) IsCaseSensitive() bool {
	return c != nil && BoolValue(c.CaseSensitive, false)
}

// UseFuzzyMentions reports whether the mention scan also uses fuzzy scoring.
func (c *Config) UseFuzzyMentions() bool {
	return c != nil && BoolValue(c.FuzzyMentions, false)
}

// UseHierarchyGroups reports whether hierarchy siblings are exempt from similarity.
func (c *Config) UseHierarchyGroups() bool {
	if c == nil {
		return true
	}
	return BoolValue(c.SkipHierarchyGroups, true)
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences p, falling back to def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
