package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	runsLimit      int
	runsShowFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the local analysis run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analysis runs, newest first",
	Run:   runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the stored report of a run",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsShowCmd.Flags().StringVar(&runsShowFormat, "format", "json",
		"Output format (json, yaml)")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	db, err := openStorage(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	runs, err := db.ListRuns(runsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-10s  vars=%d tags=%d unused=%d dup-groups=%d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.ContainerType,
			r.TotalVariables, r.TotalTags, r.UnusedVariables, r.DuplicateGroups,
			r.SourceFile)
	}
}

func runRunsShow(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	db, err := openStorage(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	rep, err := db.GetRun(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatOutput(rep, OutputFormat(runsShowFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
