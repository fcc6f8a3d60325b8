package lint

import (
	"context"

	"github.com/yaklabco/mdlinker/pkg/vault"
)

// LinkGraph is the set of resolved references between pages.
type LinkGraph struct {
	// Edges maps a page title to the titles it references, in source order.
	Edges map[string][]string

	// Broken are the references that resolved to no page.
	Broken []*BrokenWikilink

	// Resolved counts references that found a page.
	Resolved int
}

// BuildLinkGraph resolves every wikilink of every valid page.
//
// A target is first mapped to title form and looked up among page titles.
// Failing that, it is looked up as an alias. Matching is exact after
// normalization. Tags are recorded as edges when they resolve but never
// reported as broken, since a tag does not require a page.
func BuildLinkGraph(a *Analysis) *LinkGraph {
	titles := make(map[string]string, len(a.Pages))
	for _, page := range a.Pages {
		titles[a.Normalizer.Fold(page.Title)] = page.Title
	}

	g := &LinkGraph{Edges: make(map[string][]string)}
	for _, page := range a.Pages {
		if !a.Valid(page.Title) {
			continue
		}
		for _, ref := range page.References {
			target, ok := resolve(a, titles, ref.Target)
			if ok {
				g.Edges[page.Title] = append(g.Edges[page.Title], target)
				g.Resolved++
				continue
			}
			if ref.Kind == vault.ReferenceTag {
				continue
			}
			g.Broken = append(g.Broken, &BrokenWikilink{
				Source:     page.Title,
				SourcePath: page.Path,
				Target:     ref.Target,
				Span:       ref.Span,
			})
		}
	}
	return g
}

func resolve(a *Analysis, titles map[string]string, target string) (string, bool) {
	if title, ok := titles[a.Normalizer.ToFilename(target)]; ok {
		return title, true
	}
	if owners := a.Aliases.Owners(normalizeAlias(target, a.Normalizer)); len(owners) > 0 {
		return owners[0], true
	}
	return "", false
}

type brokenLinkDetector struct {
	baseDetector
}

func newBrokenLinkDetector() *brokenLinkDetector {
	return &brokenLinkDetector{baseDetector{
		kind: KindBrokenWikilink,
		desc: "A wikilink names no existing page title or alias",
	}}
}

func (d *brokenLinkDetector) Detect(_ context.Context, a *Analysis) ([]Finding, error) {
	return BrokenLinks(a), nil
}

// BrokenLinks returns a finding for every unresolved wikilink.
func BrokenLinks(a *Analysis) []Finding {
	broken := a.Graph().Broken
	findings := make([]Finding, 0, len(broken))
	for _, b := range broken {
		findings = append(findings, b)
	}
	return findings
}
