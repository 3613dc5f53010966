package report

import (
	"gtmaudit/internal/duplicates"
	"gtmaudit/internal/impact"
	"gtmaudit/internal/typenames"
	"gtmaudit/internal/usage"
)

// Summary holds the aggregate counts shown at the top of every report.
// ClientTypeBreakdown maps client display types to counts; only server-side
// exports define clients, so it is nil for web containers.
type Summary struct {
	ContainerType         string         `json:"container_type"`
	TotalVariables        int            `json:"total_variables"`
	TotalTags             int            `json:"total_tags"`
	PausedTags            int            `json:"paused_tags"`
	IncludePausedTags     bool           `json:"include_paused_tags"`
	TotalTriggers         int            `json:"total_triggers"`
	TotalTransformations  int            `json:"total_transformations"`
	TotalClients          int            `json:"total_clients"`
	ClientTypeBreakdown   map[string]int `json:"client_type_breakdown,omitempty"`
	TotalCustomTemplates  int            `json:"total_custom_templates"`
	TotalBuiltInVariables int            `json:"total_builtin_variables"`
	UnusedVariables       int            `json:"unused_variables"`
	UnusedCustomTemplates int            `json:"unused_custom_templates"`
	DuplicateGroups       int            `json:"duplicate_groups"`
	TotalDuplicates       int            `json:"total_duplicates"`
}

// BuiltInDetail describes one enabled-or-not built-in variable toggle.
type BuiltInDetail struct {
	Type      string `json:"type"`
	HumanName string `json:"human_name"`
	Enabled   bool   `json:"enabled"`
}

// BuiltInAnalysis summarizes the container's built-in variable usage.
type BuiltInAnalysis struct {
	TotalBuiltInVariables int             `json:"total_builtin_variables"`
	BuiltInByType         map[string]int  `json:"builtin_by_type"`
	BuiltInDetails        []BuiltInDetail `json:"builtin_details"`
}

// Report is the complete analysis result, JSON-serializable for the
// reporting and visualization collaborators downstream.
type Report struct {
	Summary               Summary                         `json:"summary"`
	UnusedVariables       []usage.UnusedVariable          `json:"unused_variables"`
	UnusedCustomTemplates []usage.UnusedTemplate          `json:"unused_custom_templates"`
	DuplicateVariables    *duplicates.Result              `json:"duplicate_variables"`
	BuiltInVariables      *BuiltInAnalysis                `json:"builtin_variables"`
	VariableUsageDetails  map[string]*usage.Details       `json:"variable_usage_details"`
	VariableUsageCounts   map[string]*usage.Record        `json:"variable_usage_counts"`
	CustomTemplateUsage   map[string]*usage.TemplateUsage `json:"custom_template_usage"`
	TriggerImpact         *impact.TriggerImpact           `json:"trigger_evaluation_impact"`
	TagImpact             *impact.TagImpact               `json:"tag_evaluation_impact"`
	UnknownTypes          typenames.UnknownTypes          `json:"unknown_types"`
}
