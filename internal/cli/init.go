package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlinker/internal/logging"
	"github.com/yaklabco/mdlinker/pkg/config"
	"github.com/yaklabco/mdlinker/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdlinker configuration file",
		Long: `Create a new .mdlinker.yml configuration file in the current directory
with the default patterns and substitutions documented. The file can be
customized to tune similarity, suppress findings, or switch kinds off.

Examples:
  mdlinker init                      Create .mdlinker.yml
  mdlinker init --full               Also document every finding kind
  mdlinker init --format json        Create .mdlinker.json instead
  mdlinker init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every finding kind documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdlinker.yml or .mdlinker.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	// Validate format
	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".mdlinker.json"
		} else {
			outputPath = ".mdlinker.yml"
		}
	}

	// Make path absolute
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	// Generate template
	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	backup, err := fsutil.ReplaceWithBackup(ctx, absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if backup != "" {
		logger.Info("previous configuration saved", logging.FieldPath, backup)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template documents every finding kind")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'mdlinker rules' to see all finding kinds")

	return nil
}
