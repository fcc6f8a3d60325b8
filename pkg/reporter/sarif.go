package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdlinker/pkg/analysis"
	"github.com/yaklabco/mdlinker/pkg/lint"
)

// SARIF version used by this renderer.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one finding kind.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             SARIFMessage      `json:"message"`
	Locations           []SARIFLocation   `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation reports pages that failed to process.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is one failed page.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer formats reports as SARIF.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "mdlinker",
				Version:        r.opts.ToolVersion,
				InformationURI: "https://github.com/yaklabco/mdlinker",
				Rules:          make([]SARIFRule, 0),
			},
		},
		Results: make([]SARIFResult, 0, len(report.Findings)),
	}

	rulesSeen := make(map[string]bool)
	for _, entry := range report.Findings {
		if !rulesSeen[entry.Kind] {
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(entry.Kind))
			rulesSeen[entry.Kind] = true
		}

		location := SARIFLocation{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: entry.Path},
			},
		}
		if entry.HasPosition() {
			location.PhysicalLocation.Region = &SARIFRegion{
				StartLine:   entry.Start.Line,
				StartColumn: entry.Start.Column,
				EndLine:     entry.End.Line,
				EndColumn:   entry.End.Column,
			}
		}

		run.Results = append(run.Results, SARIFResult{
			RuleID:              entry.Kind,
			Level:               kindToSARIFLevel(entry.Kind),
			Message:             SARIFMessage{Text: entry.Message},
			Locations:           []SARIFLocation{location},
			PartialFingerprints: map[string]string{"findingId/v1": entry.ID},
		})
	}

	if len(report.Failures) > 0 {
		invocation := SARIFInvocation{ExecutionSuccessful: false}
		for _, failure := range report.Failures {
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:   "error",
				Message: SARIFMessage{Text: failure.Error},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: failure.Path},
					},
				}},
			})
		}
		run.Invocations = []SARIFInvocation{invocation}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// sarifRule describes a kind using the built-in detector registry.
func sarifRule(name string) SARIFRule {
	rule := SARIFRule{
		ID:               name,
		ShortDescription: SARIFMultiformatText{Text: name},
		DefaultConfig:    &SARIFRuleConfig{Level: kindToSARIFLevel(name)},
	}
	kind, err := lint.ParseKind(name)
	if err != nil {
		return rule
	}
	rule.Name = kind.Title()
	if detector, ok := lint.DefaultRegistry.Get(kind); ok {
		rule.ShortDescription.Text = detector.Description()
	}
	return rule
}

// kindToSARIFLevel maps a finding kind to a SARIF level. Structural problems
// are errors; suggestions are warnings.
func kindToSARIFLevel(kind string) string {
	switch kind {
	case "broken_wikilink", "duplicate_alias":
		return "error"
	default:
		return "warning"
	}
}
