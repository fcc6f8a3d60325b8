package lint

import (
	"strings"
	"sync"

	"github.com/yaklabco/mdlinker/pkg/config"
	"github.com/yaklabco/mdlinker/pkg/ngram"
	"github.com/yaklabco/mdlinker/pkg/normalize"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// Analysis is the read-only state shared by all detectors during one run.
type Analysis struct {
	Corpus     *vault.Corpus
	Pages      []*vault.Page
	Normalizer *normalize.Normalizer
	Splitter   *ngram.Splitter
	Index      *ngram.Index
	Aliases    *AliasMap
	Options    Options

	names   []pageNames
	byTitle map[string]int
	invalid map[string]bool
	ignore  pairSet

	graphOnce sync.Once
	graph     *LinkGraph
}

// Valid reports whether the page passed input validation.
func (a *Analysis) Valid(title string) bool {
	return !a.invalid[title]
}

// Names returns the normalized title followed by the distinct normalized
// aliases of the page at index i.
func (a *Analysis) Names(i int) []string {
	return a.names[i].names
}

// Graph returns the link graph, building it on first use.
func (a *Analysis) Graph() *LinkGraph {
	a.graphOnce.Do(func() {
		a.graph = BuildLinkGraph(a)
	})
	return a.graph
}

// pageNames holds the comparison strings of one page.
type pageNames struct {
	// folded is the case folded title, used for hierarchy checks.
	folded string

	// names starts with the alias form of the title.
	names []string
}

func newPageNames(page *vault.Page, n *normalize.Normalizer) pageNames {
	pn := pageNames{
		folded: n.Fold(page.Title),
		names:  []string{n.ToAlias(page.Title)},
	}
	seen := map[string]bool{pn.names[0]: true}
	for _, alias := range page.Aliases {
		key := normalizeAlias(alias, n)
		if seen[key] {
			continue
		}
		seen[key] = true
		pn.names = append(pn.names, key)
	}
	return pn
}

// normalizeAlias maps a declared alias into the same space as ToAlias(title).
func normalizeAlias(alias string, n *normalize.Normalizer) string {
	return n.Fold(strings.TrimSpace(alias))
}

// pairSet holds unordered string pairs.
type pairSet map[[2]string]struct{}

func newPairSet(pairs []config.Pair, n *normalize.Normalizer) pairSet {
	set := make(pairSet, len(pairs))
	for _, p := range pairs {
		set[orderedPair(normalizeAlias(p.From, n), normalizeAlias(p.To, n))] = struct{}{}
	}
	return set
}

func orderedPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Has reports whether {a, b} is in the set, in either order.
func (s pairSet) Has(a, b string) bool {
	_, ok := s[orderedPair(a, b)]
	return ok
}
