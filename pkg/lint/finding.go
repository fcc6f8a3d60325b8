// Package lint provides the analysis engine, findings, and detector registry for mdlinker.
package lint

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlinker/pkg/vault"
)

// Kind identifies the category of a finding. Constant order is report order.
type Kind int

const (
	KindSimilarFiles Kind = iota
	KindDuplicateAlias
	KindBrokenWikilink
	KindUnlinkedText
)

// Kinds returns every kind in report order.
func Kinds() []Kind {
	return []Kind{KindSimilarFiles, KindDuplicateAlias, KindBrokenWikilink, KindUnlinkedText}
}

// String returns the identifier prefix of the kind, e.g. "duplicate_alias".
func (k Kind) String() string {
	switch k {
	case KindSimilarFiles:
		return "similar_files"
	case KindDuplicateAlias:
		return "duplicate_alias"
	case KindBrokenWikilink:
		return "broken_wikilink"
	case KindUnlinkedText:
		return "unlinked_text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title returns a short human readable label.
func (k Kind) Title() string {
	switch k {
	case KindSimilarFiles:
		return "Similar files"
	case KindDuplicateAlias:
		return "Duplicate alias"
	case KindBrokenWikilink:
		return "Broken wikilink"
	case KindUnlinkedText:
		return "Unlinked text"
	default:
		return k.String()
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind resolves a kind name. Hyphens are accepted in place of underscores.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, k := range Kinds() {
		if k.String() == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown finding kind %q", name)
}

// Finding is one reported violation. The set of implementations is closed:
// SimilarFiles, DuplicateAlias, BrokenWikilink and UnlinkedText.
type Finding interface {
	// Kind returns the category.
	Kind() Kind

	// ID returns the identifier that exclusion patterns are matched against.
	ID() string

	// Page returns the title of the page the finding is reported on.
	Page() string

	// Path returns the file of that page.
	Path() string

	// Offset returns the byte offset within the page body, or 0 when the
	// finding is not tied to body text.
	Offset() int

	// Message returns a one line description.
	Message() string

	sealed()
}

// SimilarFiles reports two pages whose names are near duplicates.
type SimilarFiles struct {
	// Pages are the two titles, in sorted order.
	Pages [2]string

	// Paths are the files of Pages.
	Paths [2]string

	// Variants are the strings that produced the best score: a title, alias
	// or n-gram of the respective page.
	Variants [2]string

	// Score is the similarity score of Variants.
	Score int
}

func (f *SimilarFiles) Kind() Kind { return KindSimilarFiles }

func (f *SimilarFiles) ID() string {
	return KindSimilarFiles.String() + ":" + f.Pages[0] + ":" + f.Pages[1]
}

func (f *SimilarFiles) Page() string { return f.Pages[0] }
func (f *SimilarFiles) Path() string { return f.Paths[0] }
func (f *SimilarFiles) Offset() int  { return 0 }

func (f *SimilarFiles) Message() string {
	return fmt.Sprintf("%q and %q have similar names (%q ~ %q, score %d)",
		f.Pages[0], f.Pages[1], f.Variants[0], f.Variants[1], f.Score)
}

func (*SimilarFiles) sealed() {}

// DuplicateAlias reports an alias claimed by more than one page.
type DuplicateAlias struct {
	// Alias is the normalized alias text.
	Alias string

	// Owners are the titles of every page claiming Alias, sorted.
	Owners []string

	// Paths are the files of Owners.
	Paths []string
}

func (f *DuplicateAlias) Kind() Kind { return KindDuplicateAlias }

func (f *DuplicateAlias) ID() string {
	return KindDuplicateAlias.String() + ":" + f.Alias
}

func (f *DuplicateAlias) Page() string {
	if len(f.Owners) == 0 {
		return ""
	}
	return f.Owners[0]
}

func (f *DuplicateAlias) Path() string {
	if len(f.Paths) == 0 {
		return ""
	}
	return f.Paths[0]
}

func (f *DuplicateAlias) Offset() int { return 0 }

func (f *DuplicateAlias) Message() string {
	return fmt.Sprintf("alias %q is claimed by %d pages: %s", f.Alias, len(f.Owners), strings.Join(f.Owners, ", "))
}

func (*DuplicateAlias) sealed() {}

// BrokenWikilink reports a reference that resolves to no page.
type BrokenWikilink struct {
	Source     string
	SourcePath string

	// Target is the raw reference target.
	Target string

	// Span covers the reference in the source body.
	Span vault.Span
}

func (f *BrokenWikilink) Kind() Kind { return KindBrokenWikilink }

func (f *BrokenWikilink) ID() string {
	return KindBrokenWikilink.String() + ":" + f.Source + ":" + f.Target
}

func (f *BrokenWikilink) Page() string { return f.Source }
func (f *BrokenWikilink) Path() string { return f.SourcePath }
func (f *BrokenWikilink) Offset() int  { return f.Span.Start }

func (f *BrokenWikilink) Message() string {
	return fmt.Sprintf("link target %q does not match any page or alias", f.Target)
}

func (*BrokenWikilink) sealed() {}

// UnlinkedText reports body text naming another page without linking it.
type UnlinkedText struct {
	Source     string
	SourcePath string

	// Span covers the mention in the source body.
	Span vault.Span

	// Text is the mention as written.
	Text string

	// Alias is the normalized alias or title that matched.
	Alias string

	// Target is the title of the page the mention should reference.
	Target     string
	TargetPath string

	// Fuzzy is set when the mention matched by score rather than exactly.
	Fuzzy bool

	// Score is the similarity score for fuzzy mentions.
	Score int
}

func (f *UnlinkedText) Kind() Kind { return KindUnlinkedText }

func (f *UnlinkedText) ID() string {
	return KindUnlinkedText.String() + ":" + f.Source + ":" + f.Alias
}

func (f *UnlinkedText) Page() string { return f.Source }
func (f *UnlinkedText) Path() string { return f.SourcePath }
func (f *UnlinkedText) Offset() int  { return f.Span.Start }

func (f *UnlinkedText) Message() string {
	if f.Fuzzy {
		return fmt.Sprintf("%q resembles page %q (score %d) but is not linked", f.Text, f.Target, f.Score)
	}
	return fmt.Sprintf("%q names page %q but is not linked", f.Text, f.Target)
}

func (*UnlinkedText) sealed() {}
