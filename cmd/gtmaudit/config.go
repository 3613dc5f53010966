package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtmaudit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gtmaudit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		cfg := loadConfig(logger)

		output, err := FormatOutput(cfg, FormatJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .gtmaudit/config.json in the current directory",
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := config.DefaultConfig().Save(cwd); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Wrote .gtmaudit/config.json")
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
