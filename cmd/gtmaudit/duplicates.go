package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtmaudit/internal/duplicates"
)

var duplicatesFormat string

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <container-export.json>",
	Short: "Group variables that read the same underlying source",
	Long: `Group variables by what they read: data layer key and version,
event data key path, cookie name, JavaScript global, URL component, or
custom template type plus key parameters. Groups with two or more
variables are duplicates.

Examples:
  gtmaudit duplicates export.json
  gtmaudit duplicates export.json --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runDuplicates,
}

func init() {
	duplicatesCmd.Flags().StringVar(&duplicatesFormat, "format", "json",
		"Output format (json, yaml)")
	rootCmd.AddCommand(duplicatesCmd)
}

// DuplicatesResponse is the duplicates command output.
type DuplicatesResponse struct {
	Duplicates      *duplicates.Result `json:"duplicates"`
	DuplicateGroups int                `json:"duplicate_groups"`
	TotalDuplicates int                `json:"total_duplicates"`
}

func runDuplicates(cmd *cobra.Command, args []string) {
	c := mustLoadContainer(args[0])

	result := duplicates.Find(c.Variables)

	resp := DuplicatesResponse{
		Duplicates:      result,
		DuplicateGroups: result.GroupCount(),
		TotalDuplicates: result.VariableCount(),
	}

	output, err := FormatOutput(resp, OutputFormat(duplicatesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
