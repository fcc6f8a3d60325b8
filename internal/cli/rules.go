package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlinker/internal/logging"
	"github.com/yaklabco/mdlinker/pkg/lint"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// kindInfo represents a finding kind in JSON output.
type kindInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the finding kinds",
		Long: `List every kind of finding mdlinker reports, with a description and
whether it runs by default. Kinds are switched off in the configuration
under "rules" or for one run with --disable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			detectors := lint.DefaultRegistry.Detectors()

			if flags.format == formatJSON {
				return outputKindsJSON(cmd.OutOrStdout(), detectors)
			}

			logger := logging.NewInteractive()
			logger.Info("finding kinds")
			for _, d := range detectors {
				logger.Info(d.Kind().String(),
					logging.FieldEnabled, d.DefaultEnabled(),
					logging.FieldDescription, d.Description(),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputKindsJSON writes the kinds as a JSON array.
func outputKindsJSON(w io.Writer, detectors []lint.Detector) error {
	infos := make([]kindInfo, 0, len(detectors))
	for _, d := range detectors {
		infos = append(infos, kindInfo{
			Name:        d.Kind().String(),
			Title:       d.Kind().Title(),
			Description: d.Description(),
			Enabled:     d.DefaultEnabled(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding kinds: %w", err)
	}
	return nil
}
