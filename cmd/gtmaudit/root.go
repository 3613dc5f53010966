package main

import (
	"github.com/spf13/cobra"

	"gtmaudit/internal/version"
)

var (
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gtmaudit",
	Short: "GTM container variable auditor",
	Long: `gtmaudit analyzes Google Tag Manager container exports (web and
server-side) for variable hygiene: reference usage across tags, triggers,
variables, transformations, clients and custom templates, unused
definitions, duplicate variables reading the same source, and the
re-evaluation cost triggers and tags impose on the container.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("gtmaudit version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "human",
		"Log format: human or json")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, error")
}
