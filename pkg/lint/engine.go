package lint

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/yaklabco/mdlinker/internal/logging"
	"github.com/yaklabco/mdlinker/pkg/config"
	"github.com/yaklabco/mdlinker/pkg/ngram"
	"github.com/yaklabco/mdlinker/pkg/normalize"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// ErrInvalidPattern is returned by NewEngine for a pattern that does not compile.
var ErrInvalidPattern = ngram.ErrInvalidPattern

// ErrInvalidConfig is returned by NewEngine for out of range option values.
var ErrInvalidConfig = errors.New("invalid configuration")

// PageFailure records a page that could not be analysed.
type PageFailure struct {
	Page string
	Path string
	Err  error
}

// Stats captures aggregate information about a run.
type Stats struct {
	Pages      int
	References int
	Aliases    int
	Grams      int
	Resolved   int
	Duration   time.Duration
}

// Report is the outcome of one engine run.
type Report struct {
	// Findings are the unsuppressed findings ordered by kind, page and offset.
	Findings []Finding

	// Failures are pages skipped because their input was malformed.
	Failures []PageFailure

	// Suppressed counts findings removed by exclusion patterns.
	Suppressed int

	// Kinds are the detectors that ran, in kind order.
	Kinds []Kind

	// Stats describes the corpus and run.
	Stats Stats
}

// HasErrors reports whether any unsuppressed finding remains.
func (r *Report) HasErrors() bool {
	return r != nil && len(r.Findings) > 0
}

// HasFailures reports whether any page was skipped.
func (r *Report) HasFailures() bool {
	return r != nil && len(r.Failures) > 0
}

// Count returns the number of findings of one kind.
func (r *Report) Count(kind Kind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Findings {
		if f.Kind() == kind {
			n++
		}
	}
	return n
}

// Options are the engine settings derived from configuration.
type Options struct {
	NgramSize           int
	Threshold           int
	FuzzyMentions       bool
	SkipHierarchyGroups bool
	Jobs                int
}

// Engine runs the enabled detectors over a corpus.
// An Engine is immutable and may be reused across runs.
type Engine struct {
	opts       Options
	normalizer *normalize.Normalizer
	splitter   *ngram.Splitter
	excluder   *Excluder
	ignore     pairSet
	detectors  []Detector
}

// NewEngine compiles cfg. Configuration errors are reported here, before any
// page is processed.
func NewEngine(cfg *config.Config, registry *Registry) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if registry == nil {
		registry = DefaultRegistry
	}

	if cfg.NgramSize < 1 {
		return nil, fmt.Errorf("%w: ngram_size must be at least 1, got %d", ErrInvalidConfig, cfg.NgramSize)
	}

	splitter, err := ngram.NewSplitter(cfg.FilenameSpacingPattern, cfg.BoundaryPattern)
	if err != nil {
		return nil, fmt.Errorf("compile patterns: %w", err)
	}

	excluder, err := NewExcluder(cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("compile exclude: %w", err)
	}

	normalizer := normalize.New(
		substitutions(cfg.FilenameToAlias),
		substitutions(cfg.AliasToFilename),
		normalize.WithCaseSensitive(cfg.IsCaseSensitive()),
	)

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &Engine{
		opts: Options{
			NgramSize:           cfg.NgramSize,
			Threshold:           cfg.FilenameMatchThreshold,
			FuzzyMentions:       cfg.UseFuzzyMentions(),
			SkipHierarchyGroups: cfg.UseHierarchyGroups(),
			Jobs:                jobs,
		},
		normalizer: normalizer,
		splitter:   splitter,
		excluder:   excluder,
		ignore:     newPairSet(cfg.IgnoreWordPairs, normalizer),
		detectors:  registry.Resolve(cfg),
	}, nil
}

func substitutions(pairs []config.Pair) []normalize.Substitution {
	out := make([]normalize.Substitution, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, normalize.Substitution{From: p.From, To: p.To})
	}
	return out
}

// Normalizer returns the engine's title/alias normalizer.
func (e *Engine) Normalizer() *normalize.Normalizer {
	return e.normalizer
}

// Run analyses the corpus. It returns an error only for cancellation or an
// internal failure; malformed pages are recorded in Report.Failures.
func (e *Engine) Run(ctx context.Context, corpus *vault.Corpus) (*Report, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	analysis, failures, err := e.prepare(ctx, corpus)
	if err != nil {
		return nil, err
	}
	for _, failure := range failures {
		logger.Warn("skipping page", logging.FieldPage, failure.Page, logging.FieldPath, failure.Path, logging.FieldError, failure.Err)
	}

	report := &Report{
		Failures: failures,
		Stats: Stats{
			Pages:   corpus.Len(),
			Aliases: analysis.Aliases.Len(),
			Grams:   analysis.Index.Len(),
		},
	}

	var findings []Finding
	for _, d := range e.detectors {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis cancelled: %w", err)
		}

		found, err := d.Detect(ctx, analysis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Kind(), err)
		}
		logger.Debug("detector finished", logging.FieldKind, d.Kind(), logging.FieldFindings, len(found))
		findings = append(findings, found...)
		report.Kinds = append(report.Kinds, d.Kind())
	}

	report.Findings, report.Suppressed = Aggregate(findings, e.excluder)

	for _, page := range analysis.Pages {
		if analysis.Valid(page.Title) {
			report.Stats.References += len(page.References)
		}
	}
	report.Stats.Resolved = analysis.Graph().Resolved
	report.Stats.Duration = time.Since(start)

	logger.Debug("analysis complete",
		logging.FieldPages, report.Stats.Pages,
		logging.FieldFindings, len(report.Findings),
		logging.FieldSuppressed, report.Suppressed,
		logging.FieldDuration, report.Stats.Duration,
	)

	return report, nil
}

// prepare validates pages and builds the shared read-only structures.
func (e *Engine) prepare(ctx context.Context, corpus *vault.Corpus) (*Analysis, []PageFailure, error) {
	pages := corpus.Pages()

	var failures []PageFailure
	for _, dup := range corpus.Shadowed() {
		failures = append(failures, PageFailure{Page: dup.Title, Path: dup.Path, Err: dup})
	}

	invalid := make(map[string]bool)
	for _, page := range pages {
		if err := page.Validate(); err != nil {
			failures = append(failures, PageFailure{Page: page.Title, Path: page.Path, Err: err})
			invalid[page.Title] = true
		}
	}

	names := make([]pageNames, len(pages))
	var entries []ngram.Entry
	for i, page := range pages {
		names[i] = newPageNames(page, e.normalizer)
		for _, name := range names[i].names {
			entries = append(entries, ngram.Entry{Page: page.Title, Text: name})
		}
	}

	index, err := ngram.BuildParallel(ctx, entries, e.splitter, e.opts.NgramSize, e.opts.Jobs)
	if err != nil {
		return nil, nil, err
	}

	a := &Analysis{
		Corpus:     corpus,
		Pages:      pages,
		Normalizer: e.normalizer,
		Splitter:   e.splitter,
		Index:      index,
		Aliases:    BuildAliasMap(pages, e.normalizer),
		Options:    e.opts,
		names:      names,
		invalid:    invalid,
		ignore:     e.ignore,
	}
	a.byTitle = make(map[string]int, len(pages))
	for i, page := range pages {
		a.byTitle[page.Title] = i
	}

	return a, failures, nil
}
