// Package report runs the full analysis pipeline over one container
// snapshot and assembles the result object: usage accounting, unused
// definitions, duplicate groups, built-in analysis, evaluation impact and
// the unknown-type translation gaps.
package report

import (
	"log/slog"

	"gtmaudit/internal/container"
	"gtmaudit/internal/duplicates"
	"gtmaudit/internal/impact"
	"gtmaudit/internal/typenames"
	"gtmaudit/internal/usage"
)

// Options configures one analysis run.
type Options struct {
	// IncludePausedTags controls whether paused tags participate in
	// reference scanning and usage accounting. Default true.
	IncludePausedTags bool

	// TypeNameOverrides optionally extends the display-name tables.
	TypeNameOverrides *typenames.Overrides
}

// DefaultOptions returns the default analysis configuration.
func DefaultOptions() Options {
	return Options{IncludePausedTags: true}
}

// Builder assembles analysis reports.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// NewBuilder creates a report builder.
func NewBuilder(opts Options, logger *slog.Logger) *Builder {
	return &Builder{opts: opts, logger: logger}
}

// Build runs every analysis stage against the container and assembles the
// report. The container is treated as an immutable snapshot throughout.
func (b *Builder) Build(c *container.Container) *Report {
	names := typenames.NewTrackerWithOverrides(b.opts.TypeNameOverrides)

	indexer := usage.NewIndexer(c, b.opts.IncludePausedTags, b.logger)
	counts := indexer.Counts()
	details := indexer.Details()
	unusedVars := indexer.UnusedVariables(counts)
	unusedTemplates := indexer.UnusedTemplates()
	templateUsage := indexer.TemplateUsageDetails()

	// Attach the (all-empty) usage details to each unused variable so the
	// report shows at a glance that every bucket came up dry.
	for i := range unusedVars {
		unusedVars[i].Details = details[unusedVars[i].Name]
	}

	dupes := duplicates.Find(c.Variables)

	impactAnalyzer := impact.NewAnalyzer(c, names, b.logger)
	triggerImpact := impactAnalyzer.AnalyzeTriggerImpact()
	tagImpact := impactAnalyzer.AnalyzeTagImpact()

	builtIns := b.analyzeBuiltIns(c, names)

	containerType := "Web"
	if c.IsServerSide() {
		containerType = "Server-side"
	}

	var clientTypes map[string]int
	if len(c.Clients) > 0 {
		clientTypes = make(map[string]int, len(c.Clients))
		for i := range c.Clients {
			clientTypes[names.ClientType(c.Clients[i].Type)]++
		}
	}

	r := &Report{
		Summary: Summary{
			ContainerType:         containerType,
			TotalVariables:        len(c.Variables),
			TotalTags:             len(c.Tags),
			PausedTags:            c.PausedTagCount(),
			IncludePausedTags:     b.opts.IncludePausedTags,
			TotalTriggers:         len(c.Triggers),
			TotalTransformations:  len(c.Transformations),
			TotalClients:          len(c.Clients),
			ClientTypeBreakdown:   clientTypes,
			TotalCustomTemplates:  len(c.CustomTemplates),
			TotalBuiltInVariables: len(c.BuiltIns),
			UnusedVariables:       len(unusedVars),
			UnusedCustomTemplates: len(unusedTemplates),
			DuplicateGroups:       dupes.GroupCount(),
			TotalDuplicates:       dupes.VariableCount(),
		},
		UnusedVariables:       unusedVars,
		UnusedCustomTemplates: unusedTemplates,
		DuplicateVariables:    dupes,
		BuiltInVariables:      builtIns,
		VariableUsageDetails:  details,
		VariableUsageCounts:   counts,
		CustomTemplateUsage:   templateUsage,
		TriggerImpact:         triggerImpact,
		TagImpact:             tagImpact,
		UnknownTypes:          names.Report(),
	}

	if b.logger != nil {
		b.logger.Info("analysis completed",
			"containerType", containerType,
			"variables", len(c.Variables),
			"unusedVariables", len(unusedVars),
			"duplicateGroups", dupes.GroupCount())
	}

	return r
}

func (b *Builder) analyzeBuiltIns(c *container.Container, names *typenames.Tracker) *BuiltInAnalysis {
	analysis := &BuiltInAnalysis{
		TotalBuiltInVariables: len(c.BuiltIns),
		BuiltInByType:         make(map[string]int),
		BuiltInDetails:        []BuiltInDetail{},
	}

	for i := range c.BuiltIns {
		bi := &c.BuiltIns[i]
		humanName := names.BuiltInType(bi.Type)
		analysis.BuiltInByType[humanName]++
		analysis.BuiltInDetails = append(analysis.BuiltInDetails, BuiltInDetail{
			Type:      bi.Type,
			HumanName: humanName,
			Enabled:   bi.Enabled,
		})
	}

	return analysis
}
