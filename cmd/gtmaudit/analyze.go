package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gtmaudit/internal/config"
	"gtmaudit/internal/logging"
	"gtmaudit/internal/report"
	"gtmaudit/internal/storage"
)

var (
	analyzeExcludePaused bool
	analyzeOutput        string
	analyzeFormat        string
	analyzeSave          bool
	analyzeStdout        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <container-export.json>",
	Short: "Run the full container analysis and write a report",
	Long: `Run every analysis stage against a GTM container export: variable
usage accounting, unused variables and custom templates, duplicate
variable groups, built-in variable analysis, trigger and tag evaluation
impact, and unknown-type tracking.

The report is written next to the input as <input>_analysis_report.json
unless --output is given.

Examples:
  gtmaudit analyze GTM-XXXXXX_workspace.json
  gtmaudit analyze export.json --exclude-paused
  gtmaudit analyze export.json --format yaml --output report.yaml
  gtmaudit analyze export.json --save
  gtmaudit analyze export.json --stdout`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeExcludePaused, "exclude-paused", false,
		"Exclude paused tags from usage accounting and impact analysis")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "",
		"Report output path (default: <input>_analysis_report.json)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json",
		"Output format (json, yaml)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false,
		"Save the run to the local run history database")
	analyzeCmd.Flags().BoolVar(&analyzeStdout, "stdout", false,
		"Print the report to stdout instead of writing a file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger()
	cfg := loadConfig(logger)
	inputPath := args[0]

	c := mustLoadContainer(inputPath)
	opts := buildReportOptions(cfg, analyzeExcludePaused, logger)

	builder := report.NewBuilder(opts, logging.NewSlog(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.Level(logLevelFlag),
	}))
	rep := builder.Build(c)

	output, err := FormatOutput(rep, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting report: %v\n", err)
		os.Exit(1)
	}

	outPath := analyzeOutput
	if analyzeStdout {
		outPath = "-"
	} else if outPath == "" {
		outPath = defaultOutputPath(inputPath)
	}

	if err := writeOutput(outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if outPath != "-" {
		fmt.Printf("Report written to %s\n", outPath)
	}

	if analyzeSave && cfg.Storage.Enabled {
		saveRun(cfg, inputPath, rep, logger)
	}

	logger.Debug("Analysis completed", map[string]interface{}{
		"variables":   rep.Summary.TotalVariables,
		"unused":      rep.Summary.UnusedVariables,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func saveRun(cfg *config.Config, inputPath string, rep *report.Report, logger *logging.Logger) {
	db, err := openStorage(cfg, logger)
	if err != nil {
		logger.Warn("Failed to open run history database", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer db.Close()

	id, err := db.SaveRun(inputPath, rep)
	if err != nil {
		logger.Warn("Failed to save run", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	fmt.Printf("Run saved as %s\n", id)
}

func openStorage(cfg *config.Config, logger *logging.Logger) (*storage.DB, error) {
	if cfg.Storage.Path != "" {
		return storage.OpenPath(cfg.Storage.Path, logger)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return storage.Open(cwd, logger)
}
