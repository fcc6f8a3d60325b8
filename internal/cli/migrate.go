package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlinker/internal/configloader"
	"github.com/yaklabco/mdlinker/internal/logging"
	"github.com/yaklabco/mdlinker/pkg/fsutil"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a legacy mdlinker.toml to .mdlinker.yml",
		Long: `Convert a configuration file from an older mdlinker release
(mdlinker.toml) to the YAML format (.mdlinker.yml).

If no input file is specified, the command looks for mdlinker.toml or
.mdlinker.toml in the current directory.

Substitution sequences are merged into one ordered list, and find patterns
are matched as literal text. The command warns about anything that does not
carry over unchanged.

Examples:
  mdlinker migrate                       Auto-detect and convert mdlinker.toml
  mdlinker migrate notes/mdlinker.toml   Convert a specific file
  mdlinker migrate --output config.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".mdlinker.yml", "Output file path")

	return cmd
}

func runMigrate(ctx context.Context, flags *migrateFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindLegacyConfig(cwd)
		if inputPath == "" {
			return errors.New("no mdlinker.toml found in current directory")
		}

		logger.Info("found legacy config", logging.FieldPath, inputPath)
	}

	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(inputPath))
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertLegacyConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	content, err := result.Config.ToYAMLWithHeader(configloader.GenerateMigrationHeader(inputPath))
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	backup, err := fsutil.ReplaceWithBackup(ctx, absOutput, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	if backup != "" {
		logger.Info("previous configuration saved", logging.FieldPath, backup)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("you can now delete the old mdlinker.toml")

	return nil
}
