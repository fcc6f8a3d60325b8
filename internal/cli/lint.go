package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlinker/internal/configloader"
	"github.com/yaklabco/mdlinker/internal/logging"
	"github.com/yaklabco/mdlinker/pkg/config"
	"github.com/yaklabco/mdlinker/pkg/lint"
	goldmarkparser "github.com/yaklabco/mdlinker/pkg/parser/goldmark"
	"github.com/yaklabco/mdlinker/pkg/reporter"
	"github.com/yaklabco/mdlinker/pkg/runner"
	"github.com/yaklabco/mdlinker/pkg/vault"
)

// outputFilePermissions is the file mode for report files written with --output.
const outputFilePermissions = 0o644

type lintFlags struct {
	format        string
	output        string
	flavor        string
	ignore        []string
	exclude       []string
	enable        []string
	disable       []string
	threshold     int
	ngramSize     int
	fuzzy         bool
	caseSensitive bool
	noContext     bool
	compact       bool
	flat          bool
	summaryOrder  string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check a vault for link problems",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		Annotations: map[string]string{
			annotationKinds: "",
			annotationEnv:   "",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check a vault of Markdown notes for link problems.

Four kinds of finding are reported:
  similar_files    two page names or name fragments are near duplicates
  duplicate_alias  an alias is claimed by more than one page
  broken_wikilink  a [[wikilink]] names no page title or alias
  unlinked_text    body text names another page without linking to it

By default, all .md and .markdown files under the configured paths are
checked. The exit status is 0 for a clean vault, 1 when findings are
reported, and 2 when the configuration is invalid or a page could not
be checked.

Examples:
  mdlinker lint                          # Check the configured paths
  mdlinker lint pages journals           # Check two directories
  mdlinker lint --exclude 'similar_files:*'
  mdlinker lint --format json            # Output as JSON for CI
  mdlinker lint --format markdown -o report.md`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := commandLogger(cmd)
	ctx = logging.WithLogger(ctx, logger)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	// Only values given on the command line override configuration files.
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = config.OutputFormat(format.String())
	}
	if changed("flavor") {
		cfg.Flavor = flags.flavor
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if changed("threshold") {
		cfg.FilenameMatchThreshold = flags.threshold
	}
	if changed("ngram-size") {
		cfg.NgramSize = flags.ngramSize
	}
	if changed("fuzzy-mentions") {
		cfg.FuzzyMentions = config.Bool(flags.fuzzy)
	}
	if changed("case-sensitive") {
		cfg.CaseSensitive = config.Bool(flags.caseSensitive)
	}
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldThreshold, finalCfg.FilenameMatchThreshold,
		logging.FieldFormat, finalCfg.Format,
	)

	// Patterns are compiled before any page is read.
	engine, err := lint.NewEngine(finalCfg, lint.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		paths = finalCfg.Paths
	}

	runOpts := runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   finalCfg.Extensions,
		ExcludeGlobs: finalCfg.Ignore,
		SkipVendored: true,
		Jobs:         finalCfg.Jobs,
	}

	logger.Debug("starting discovery",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	files, err := runner.New(goldmarkparser.New(finalCfg.Flavor)).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("page discovery failed"), err)
	}

	logger.Debug("pages parsed",
		logging.FieldFilesDiscovered, files.Stats.FilesDiscovered,
		logging.FieldFilesParsed, files.Stats.FilesParsed,
		logging.FieldFilesErrored, files.Stats.FilesErrored,
	)

	corpus := vault.NewCorpus(files.Pages())

	report, err := engine.Run(ctx, corpus)
	if err != nil {
		return fmt.Errorf("analyse vault: %w", err)
	}
	report.Failures = append(fileFailures(files, workDir, logger), report.Failures...)

	out, closeOut, err := openOutput(cmd.OutOrStdout(), flags.output)
	if err != nil {
		return err
	}
	defer closeOut()

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	finalFormat, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       finalFormat,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  !flags.flat,
		Compact:      flags.compact,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, report, corpus); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(files, report) {
	case ExitError:
		return ErrPagesFailed
	case ExitFindings:
		return ErrFindingsReported
	default:
		return nil
	}
}

// fileFailures turns files the runner could not read or parse into report
// failures, so every output format lists them.
func fileFailures(files *runner.Result, workDir string, logger *log.Logger) []lint.PageFailure {
	failed := files.Failed()
	failures := make([]lint.PageFailure, 0, len(failed))
	for _, f := range failed {
		path := f.Path
		if rel, err := filepath.Rel(workDir, path); err == nil {
			path = rel
		}
		logger.Warn("cannot read page", logging.FieldPath, path, logging.FieldError, f.Error)
		failures = append(failures, lint.PageFailure{
			Page: vault.TitleFromPath(path),
			Path: path,
			Err:  f.Error,
		})
	}
	return failures
}

// openOutput returns the report destination. An empty path selects fallback.
func openOutput(fallback io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return fallback, func() {}, nil
	}

	//nolint:gosec // The report path is chosen by the user.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// commandLogger returns a logger writing to the command's error stream,
// at debug level when --debug is set.
func commandLogger(cmd *cobra.Command) *log.Logger {
	level := "info"
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		level = "debug"
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level)
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, sarif, markdown, summary")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to skip")
	cmd.Flags().StringSliceVarP(&flags.exclude, "exclude", "e", nil, "glob patterns of finding ids to suppress")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "finding kinds to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "finding kinds to disable")
	cmd.Flags().IntVar(&flags.threshold, "threshold", config.DefaultFilenameMatchThreshold,
		"minimum similarity score reported")
	cmd.Flags().IntVar(&flags.ngramSize, "ngram-size", config.DefaultNgramSize, "widest n-gram compared between names")
	cmd.Flags().BoolVar(&flags.fuzzy, "fuzzy-mentions", false, "also report near matches of page names in body text")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "compare names without case folding")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "list findings without grouping by page")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderKinds),
		"order of tables in summary output: kinds, pages")
}
