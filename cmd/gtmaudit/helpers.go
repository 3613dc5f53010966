package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"gtmaudit/internal/config"
	"gtmaudit/internal/container"
	"gtmaudit/internal/logging"
	"gtmaudit/internal/report"
	"gtmaudit/internal/typenames"
)

// OutputFormat selects the report serialization.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func newLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.Level(logLevelFlag),
	})
}

func loadConfig(logger *logging.Logger) *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

func mustLoadContainer(path string) *container.Container {
	c, err := container.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading container export: %v\n", err)
		os.Exit(1)
	}
	return c
}

// buildReportOptions merges config defaults with the per-command paused-tag
// flag and loads type-name overrides when configured.
func buildReportOptions(cfg *config.Config, excludePaused bool, logger *logging.Logger) report.Options {
	opts := report.DefaultOptions()
	opts.IncludePausedTags = cfg.IncludePausedTags
	if excludePaused {
		opts.IncludePausedTags = false
	}

	if cfg.TypeNames.OverridesPath != "" {
		ov, err := typenames.LoadOverrides(cfg.TypeNames.OverridesPath)
		if err != nil {
			logger.Warn("Failed to load type-name overrides", map[string]interface{}{
				"path":  cfg.TypeNames.OverridesPath,
				"error": err.Error(),
			})
		} else {
			opts.TypeNameOverrides = ov
		}
	}
	return opts
}

// FormatOutput serializes a result in the requested format.
func FormatOutput(v interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func writeOutput(path, content string) error {
	if path == "" || path == "-" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

var copyIndicatorPattern = regexp.MustCompile(` \(\d+\)$`)

// defaultOutputPath derives <input>_analysis_report.json from the container
// export path, stripping browser download copy indicators like " (1)".
func defaultOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stem = copyIndicatorPattern.ReplaceAllString(stem, "")
	return filepath.Join(dir, stem+"_analysis_report.json")
}
