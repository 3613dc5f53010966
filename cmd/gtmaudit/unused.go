package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtmaudit/internal/logging"
	"gtmaudit/internal/report"
	"gtmaudit/internal/usage"
)

var (
	unusedExcludePaused bool
	unusedFormat        string
	unusedTemplates     bool
)

var unusedCmd = &cobra.Command{
	Use:   "unused <container-export.json>",
	Short: "List variables that nothing in the container references",
	Long: `List variables with zero references anywhere in the container,
including references from other variables, transformations, clients and
custom template code.

Examples:
  gtmaudit unused export.json
  gtmaudit unused export.json --templates
  gtmaudit unused export.json --exclude-paused --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runUnused,
}

func init() {
	unusedCmd.Flags().BoolVar(&unusedExcludePaused, "exclude-paused", false,
		"Exclude paused tags from usage accounting")
	unusedCmd.Flags().StringVar(&unusedFormat, "format", "json",
		"Output format (json, yaml)")
	unusedCmd.Flags().BoolVar(&unusedTemplates, "templates", false,
		"Include unused custom templates in the output")
	rootCmd.AddCommand(unusedCmd)
}

// UnusedResponse is the unused command output.
type UnusedResponse struct {
	UnusedVariables       []usage.UnusedVariable `json:"unused_variables"`
	UnusedCustomTemplates []usage.UnusedTemplate `json:"unused_custom_templates,omitempty"`
	TotalVariables        int                    `json:"total_variables"`
}

func runUnused(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	c := mustLoadContainer(args[0])
	opts := buildReportOptions(cfg, unusedExcludePaused, logger)
	rep := report.NewBuilder(opts, logging.NewSlog(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.Level(logLevelFlag),
	})).Build(c)

	resp := UnusedResponse{
		UnusedVariables: rep.UnusedVariables,
		TotalVariables:  rep.Summary.TotalVariables,
	}
	if unusedTemplates {
		resp.UnusedCustomTemplates = rep.UnusedCustomTemplates
	}

	output, err := FormatOutput(resp, OutputFormat(unusedFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
