package usage

// The six component categories checked for variable references. These are
// the bucket keys in UsageLocations/UsageComponents and the report output.
const (
	CategoryTags            = "tags"
	CategoryTriggers        = "triggers"
	CategoryVariables       = "variables"
	CategoryTransformations = "transformations"
	CategoryClients         = "clients"
	CategoryCustomTemplates = "custom_templates"
)

// Categories lists the six buckets in scan order.
var Categories = []string{
	CategoryTags,
	CategoryTriggers,
	CategoryVariables,
	CategoryTransformations,
	CategoryClients,
	CategoryCustomTemplates,
}

// Record is the per-variable usage accounting derived on each analysis run.
type Record struct {
	// Variable is the raw definition the record was derived for.
	Variable map[string]any `json:"variable"`

	// UsageLocations counts referencing components per category. A
	// component referencing the variable five times still counts once
	// here; the multiplicity lands in TotalReferences.
	UsageLocations map[string]int `json:"usage_locations"`

	// UsageComponents lists referencing component display names per
	// category. Paused tag sources carry a " (PAUSED)" suffix.
	UsageComponents map[string][]string `json:"usage_components"`

	// TotalReferences is the exact occurrence total across all
	// referencing components.
	TotalReferences int `json:"total_references"`

	// EvaluationContexts is the number of categories with at least one
	// referencing component.
	EvaluationContexts int `json:"evaluation_contexts"`

	// PotentialReevaluations is the worst-case per-event evaluation
	// count: the sum of all category location counts, assuming no caching
	// across contexts.
	PotentialReevaluations int `json:"potential_reevaluations"`

	// MinimumReevaluations is the conservative floor: one evaluation per
	// non-empty category.
	MinimumReevaluations int `json:"minimum_reevaluations"`
}

// Details lists the referencing component names per category for one
// variable, without occurrence multiplicities.
type Details struct {
	UsedInTags            []string `json:"used_in_tags"`
	UsedInTriggers        []string `json:"used_in_triggers"`
	UsedInTransformations []string `json:"used_in_transformations"`
	UsedInVariables       []string `json:"used_in_variables"`
	UsedInClients         []string `json:"used_in_clients"`
	UsedInCustomTemplates []string `json:"used_in_custom_templates"`
	TotalUsage            int      `json:"total_usage"`
}

// UnusedVariable identifies a variable with zero references across all six
// categories after self-reference exclusion.
type UnusedVariable struct {
	Name       string   `json:"name"`
	VariableID string   `json:"variableId"`
	Type       string   `json:"type"`
	Details    *Details `json:"usage_details,omitempty"`
}
