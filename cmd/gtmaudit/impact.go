package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtmaudit/internal/impact"
	"gtmaudit/internal/logging"
	"gtmaudit/internal/report"
)

var (
	impactExcludePaused bool
	impactFormat        string
)

var impactCmd = &cobra.Command{
	Use:   "impact <container-export.json>",
	Short: "Estimate variable re-evaluation cost of triggers and tags",
	Long: `Estimate how many variable evaluations each trigger firing and each
tag execution causes, counting transitively referenced variables once per
referencing site.

Paused tags never contribute to impact; --exclude-paused additionally
removes them from the usage accounting that other commands share.

Examples:
  gtmaudit impact export.json
  gtmaudit impact export.json --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runImpact,
}

func init() {
	impactCmd.Flags().BoolVar(&impactExcludePaused, "exclude-paused", false,
		"Exclude paused tags from usage accounting")
	impactCmd.Flags().StringVar(&impactFormat, "format", "json",
		"Output format (json, yaml)")
	rootCmd.AddCommand(impactCmd)
}

// ImpactResponse is the impact command output.
type ImpactResponse struct {
	TriggerImpact *impact.TriggerImpact `json:"trigger_evaluation_impact"`
	TagImpact     *impact.TagImpact     `json:"tag_evaluation_impact"`
}

func runImpact(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	c := mustLoadContainer(args[0])
	opts := buildReportOptions(cfg, impactExcludePaused, logger)
	rep := report.NewBuilder(opts, logging.NewSlog(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.Level(logLevelFlag),
	})).Build(c)

	resp := ImpactResponse{
		TriggerImpact: rep.TriggerImpact,
		TagImpact:     rep.TagImpact,
	}

	output, err := FormatOutput(resp, OutputFormat(impactFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
