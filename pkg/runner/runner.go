package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/mdlinker/pkg/fsutil"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// Parser turns the content of one file into a page.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*vault.Page, error)
}

// Runner discovers page files and parses them with a worker pool.
type Runner struct {
	Parser Parser
}

// New creates a new Runner with the given parser.
func New(parser Parser) *Runner {
	return &Runner{Parser: parser}
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// Page paths are made relative to the working directory when possible.
// A file that cannot be read or parsed is recorded in its outcome and does
// not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workDir, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; reassemble by path.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workDir string, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}
		page, err := r.parseFile(ctx, workDir, path)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Page = page
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) parseFile(ctx context.Context, workDir, path string) (*vault.Page, error) {
	content, err := fsutil.ReadPage(ctx, path)
	if err != nil {
		return nil, err
	}

	display := path
	if rel, relErr := filepath.Rel(workDir, path); relErr == nil && !filepath.IsAbs(rel) {
		display = rel
	}

	page, err := r.Parser.Parse(ctx, display, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", display, err)
	}
	return page, nil
}
