package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/yaklabco/mdlinker/pkg/lint"
	"github.com/yaklabco/mdlinker/pkg/mdast"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	kindMap   map[lint.Kind]*KindAnalysis
	pageMap   map[string]*PageAnalysis
	kindPages map[lint.Kind]map[string]bool
	pageKinds map[string]map[string]bool
	sources   map[string]*mdast.Source
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kindMap:   make(map[lint.Kind]*KindAnalysis),
		pageMap:   make(map[string]*PageAnalysis),
		kindPages: make(map[lint.Kind]map[string]bool),
		pageKinds: make(map[string]map[string]bool),
		sources:   make(map[string]*mdast.Source),
	}
}

func (ctx *analysisContext) page(title, path string) *PageAnalysis {
	if _, ok := ctx.pageMap[title]; !ok {
		ctx.pageMap[title] = &PageAnalysis{Page: title, Path: path}
		ctx.pageKinds[title] = make(map[string]bool)
	}
	return ctx.pageMap[title]
}

func (ctx *analysisContext) kind(k lint.Kind) *KindAnalysis {
	if _, ok := ctx.kindMap[k]; !ok {
		ctx.kindMap[k] = &KindAnalysis{Kind: k.String(), Title: k.Title()}
		ctx.kindPages[k] = make(map[string]bool)
	}
	return ctx.kindMap[k]
}

// source returns the line index of a page body, built on first use.
func (ctx *analysisContext) source(corpus *vault.Corpus, title string) *mdast.Source {
	if src, ok := ctx.sources[title]; ok {
		return src
	}
	var src *mdast.Source
	if page, ok := corpus.Page(title); ok {
		src = mdast.NewSource(page.Path, page.Body)
	}
	ctx.sources[title] = src
	return src
}

// newEntry flattens a finding. Span based findings get line and column
// positions from the page body.
func (ctx *analysisContext) newEntry(f lint.Finding, corpus *vault.Corpus) FindingEntry {
	entry := FindingEntry{
		Kind:    f.Kind().String(),
		ID:      f.ID(),
		Page:    f.Page(),
		Path:    f.Path(),
		Message: f.Message(),
		Offset:  f.Offset(),
	}

	var span *vault.Span
	switch v := f.(type) {
	case *lint.SimilarFiles:
		entry.Related = []string{v.Pages[1]}
		entry.Score = v.Score
	case *lint.DuplicateAlias:
		entry.Related = slices.Clone(v.Owners[min(1, len(v.Owners)):])
		entry.Text = v.Alias
	case *lint.BrokenWikilink:
		entry.Related = []string{v.Target}
		span = &v.Span
	case *lint.UnlinkedText:
		entry.Related = []string{v.Target}
		entry.Score = v.Score
		span = &v.Span
	}

	if span != nil {
		if src := ctx.source(corpus, f.Page()); src != nil && span.End <= len(src.Content) {
			pos := src.Range(span.Start, span.End)
			entry.Start, entry.End = pos.Start(), pos.End()
			entry.Text = src.Content[span.Start:span.End]
			entry.Line = src.LineContent(entry.Start.Line)
		}
	}
	return entry
}

func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kindMap))
	for k, ka := range ctx.kindMap {
		for p := range ctx.kindPages[k] {
			ka.Pages = append(ka.Pages, p)
		}
		slices.Sort(ka.Pages)
		result = append(result, *ka)
	}
	slices.SortFunc(result, func(left, right KindAnalysis) int {
		if opts.SortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		return byCount(left.Findings, right.Findings, opts.SortDesc, left.Kind, right.Kind)
	})
	return result
}

func (ctx *analysisContext) buildByPage(opts Options) []PageAnalysis {
	result := make([]PageAnalysis, 0, len(ctx.pageMap))
	for title, pa := range ctx.pageMap {
		for k := range ctx.pageKinds[title] {
			pa.Kinds = append(pa.Kinds, k)
		}
		slices.Sort(pa.Kinds)
		result = append(result, *pa)
	}
	slices.SortFunc(result, func(left, right PageAnalysis) int {
		if opts.SortBy == SortByAlpha {
			return cmp.Compare(left.Page, right.Page)
		}
		return byCount(left.Findings, right.Findings, opts.SortDesc, left.Page, right.Page)
	})
	return result
}

// byCount orders by count, breaking ties by name so output is stable.
func byCount(left, right int, desc bool, leftName, rightName string) int {
	result := cmp.Compare(left, right)
	if desc {
		result = -result
	}
	return cmp.Or(result, cmp.Compare(leftName, rightName))
}

// Analyze transforms an engine report into presentation views.
// corpus supplies page bodies for line and column positions; it may be nil.
func Analyze(report *lint.Report, corpus *vault.Corpus, opts Options) *Report {
	out := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if report == nil {
		return out
	}

	out.Totals = Totals{
		Pages:      report.Stats.Pages,
		Findings:   len(report.Findings),
		Suppressed: report.Suppressed,
		Failures:   len(report.Failures),
		References: report.Stats.References,
		Aliases:    report.Stats.Aliases,
		Grams:      report.Stats.Grams,
		Duration:   report.Stats.Duration,
	}

	for _, failure := range report.Failures {
		out.Failures = append(out.Failures, FailureEntry{
			Page:  failure.Page,
			Path:  failure.Path,
			Error: failure.Err.Error(),
		})
	}

	ctx := newAnalysisContext()
	for _, f := range report.Findings {
		pa := ctx.page(f.Page(), f.Path())
		pa.Findings++
		ctx.pageKinds[f.Page()][f.Kind().String()] = true

		ka := ctx.kind(f.Kind())
		ka.Findings++
		ctx.kindPages[f.Kind()][f.Page()] = true

		if opts.IncludeFindings {
			out.Findings = append(out.Findings, ctx.newEntry(f, corpus))
		}
	}
	out.Totals.PagesWithFindings = len(ctx.pageMap)

	if opts.IncludeByKind {
		out.ByKind = ctx.buildByKind(opts)
	}
	if opts.IncludeByPage {
		out.ByPage = ctx.buildByPage(opts)
	}

	return out
}
