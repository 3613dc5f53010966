package impact

// AttachedTag identifies a non-paused tag wired to an analyzed trigger.
type AttachedTag struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TriggerDetail is the per-trigger structural breakdown: the variables the
// trigger references directly versus everything reachable through
// variable-to-variable chains. Type carries the trigger's display name.
type TriggerDetail struct {
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	DirectVariables []string       `json:"direct_variables"`
	AllVariables    map[string]int `json:"all_variables"`
	AttachedTags    []AttachedTag  `json:"attached_tags"`
}

// TriggerImpact estimates how often variables are evaluated when trigger
// conditions are checked. Only triggers attached to at least one non-paused
// tag participate.
type TriggerImpact struct {
	TotalEvaluations      int             `json:"total_evaluations"`
	EvaluationsByType     map[string]int  `json:"evaluations_by_type"`
	EvaluationsByVariable map[string]int  `json:"evaluations_by_variable"`
	TriggersAnalyzed      int             `json:"triggers_analyzed"`
	TagTypeBreakdown      map[string]int  `json:"tag_type_breakdown"`
	TriggerDetails        []TriggerDetail `json:"trigger_details"`
}

// TransformationRef summarizes one tag-level transformation's references.
type TransformationRef struct {
	Type      string   `json:"type"`
	Variables []string `json:"variables"`
}

// TemplateMeta links a cvt_* tag to its template definition.
type TemplateMeta struct {
	Name       string `json:"name"`
	TemplateID string `json:"template_id"`
}

// TagDetail is the per-tag structural breakdown.
type TagDetail struct {
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	DirectVariables    []string            `json:"direct_variables"`
	AllVariables       map[string]int      `json:"all_variables"`
	Transformations    []TransformationRef `json:"transformations"`
	CustomTemplateInfo *TemplateMeta       `json:"custom_template_info"`
}

// TagTypeStats aggregates evaluation impact per tag display type.
type TagTypeStats struct {
	Count            int      `json:"count"`
	TotalEvaluations int      `json:"total_evaluations"`
	UniqueVariables  int      `json:"unique_variables"`
	VariablesUsed    []string `json:"variables_used"`
}

// TagImpact estimates how often variables are evaluated during tag firing.
// Paused tags are always excluded: they never fire.
type TagImpact struct {
	TotalEvaluations         int                      `json:"total_evaluations"`
	EvaluationsByType        map[string]int           `json:"evaluations_by_type"`
	EvaluationsByVariable    map[string]int           `json:"evaluations_by_variable"`
	TagsAnalyzed             int                      `json:"tags_analyzed"`
	TagTypeStatistics        map[string]*TagTypeStats `json:"tag_type_statistics"`
	TagDetails               []TagDetail              `json:"tag_details"`
	TransformationsProcessed int                      `json:"transformations_processed"`
	CustomTemplatesProcessed int                      `json:"custom_templates_processed"`
}
