package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gtmaudit/internal/graphexport"
	"gtmaudit/internal/logging"
	"gtmaudit/internal/report"
)

var (
	graphExcludePaused  bool
	graphCypher         bool
	graphMaxNodes       int
	graphMinConnections int
	graphOutput         string
)

var graphCmd = &cobra.Command{
	Use:   "graph <container-export.json>",
	Short: "Export the variable dependency graph",
	Long: `Export the container's variable usage relationships as a graph
dataset: the container node, the most-referenced variables, the
components using them, and variable-to-variable reference edges.

The default output is a JSON dataset of nodes and relationships;
--cypher emits Neo4j MERGE statements instead.

Examples:
  gtmaudit graph export.json
  gtmaudit graph export.json --cypher --output load.cypher
  gtmaudit graph export.json --max-nodes 100 --min-connections 2`,
	Args: cobra.ExactArgs(1),
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphExcludePaused, "exclude-paused", false,
		"Exclude paused tags from usage accounting")
	graphCmd.Flags().BoolVar(&graphCypher, "cypher", false,
		"Emit Cypher MERGE statements instead of a JSON dataset")
	graphCmd.Flags().IntVar(&graphMaxNodes, "max-nodes", 0,
		"Cap exported variables, keeping the most referenced (0 = config default)")
	graphCmd.Flags().IntVar(&graphMinConnections, "min-connections", -1,
		"Drop variables with fewer total references (-1 = config default)")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "",
		"Output path (default: stdout)")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	c := mustLoadContainer(args[0])
	opts := buildReportOptions(cfg, graphExcludePaused, logger)
	rep := report.NewBuilder(opts, logging.NewSlog(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.Level(logLevelFlag),
	})).Build(c)

	graphOpts := graphexport.Options{
		MaxNodes:       cfg.Graph.MaxNodes,
		MinConnections: cfg.Graph.MinConnections,
	}
	if graphMaxNodes > 0 {
		graphOpts.MaxNodes = graphMaxNodes
	}
	if graphMinConnections >= 0 {
		graphOpts.MinConnections = graphMinConnections
	}

	dataset := graphexport.Build(rep, graphOpts)

	var output string
	if graphCypher {
		output = strings.Join(dataset.Cypher(), "\n")
	} else {
		var err error
		output, err = FormatOutput(dataset, FormatJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting dataset: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeOutput(graphOutput, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if graphOutput != "" && graphOutput != "-" {
		fmt.Printf("Graph export written to %s\n", graphOutput)
	}

	logger.Debug("Graph export completed", map[string]interface{}{
		"nodes":         len(dataset.Nodes),
		"relationships": len(dataset.Relationships),
	})
}
