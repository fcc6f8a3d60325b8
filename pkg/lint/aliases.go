package lint

import (
	"context"
	"slices"

	"github.com/yaklabco/mdlinker/pkg/normalize"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// AliasMap maps each normalized alias to the titles of the pages claiming it.
// Every page's own title, in alias form, is one of its aliases.
type AliasMap struct {
	owners map[string][]string
	keys   []string
}

// BuildAliasMap collects titles and declared aliases of every page.
func BuildAliasMap(pages []*vault.Page, n *normalize.Normalizer) *AliasMap {
	sets := make(map[string]map[string]struct{})
	add := func(key, title string) {
		set, ok := sets[key]
		if !ok {
			set = make(map[string]struct{})
			sets[key] = set
		}
		set[title] = struct{}{}
	}

	for _, page := range pages {
		add(n.ToAlias(page.Title), page.Title)
		for _, alias := range page.Aliases {
			add(normalizeAlias(alias, n), page.Title)
		}
	}

	m := &AliasMap{
		owners: make(map[string][]string, len(sets)),
		keys:   make([]string, 0, len(sets)),
	}
	for key, set := range sets {
		titles := make([]string, 0, len(set))
		for t := range set {
			titles = append(titles, t)
		}
		slices.Sort(titles)
		m.owners[key] = titles
		m.keys = append(m.keys, key)
	}
	slices.Sort(m.keys)

	return m
}

// Owners returns the sorted titles claiming key.
func (m *AliasMap) Owners(key string) []string {
	return m.owners[key]
}

// Keys returns every alias in sorted order. The slice must not be modified.
func (m *AliasMap) Keys() []string {
	return m.keys
}

// Len returns the number of distinct aliases.
func (m *AliasMap) Len() int {
	return len(m.keys)
}

type duplicateAliasDetector struct {
	baseDetector
}

func newDuplicateAliasDetector() *duplicateAliasDetector {
	return &duplicateAliasDetector{baseDetector{
		kind: KindDuplicateAlias,
		desc: "An alias or page name is claimed by more than one page",
	}}
}

func (d *duplicateAliasDetector) Detect(_ context.Context, a *Analysis) ([]Finding, error) {
	return DuplicateAliases(a), nil
}

// DuplicateAliases reports every alias with more than one owner, once per alias.
func DuplicateAliases(a *Analysis) []Finding {
	var findings []Finding
	for _, key := range a.Aliases.Keys() {
		owners := a.Aliases.Owners(key)
		if key == "" || len(owners) < 2 { //nolint:mnd // a duplicate needs two owners
			continue
		}

		paths := make([]string, len(owners))
		for i, title := range owners {
			if page, ok := a.Corpus.Page(title); ok {
				paths[i] = page.Path
			}
		}

		findings = append(findings, &DuplicateAlias{
			Alias:  key,
			Owners: slices.Clone(owners),
			Paths:  paths,
		})
	}
	return findings
}
