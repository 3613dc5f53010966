package impact

import (
	"reflect"
	"testing"

	"gtmaudit/internal/container"
	"gtmaudit/internal/typenames"
)

func chainVar(name string, refs ...string) container.Variable {
	params := make([]any, 0, len(refs))
	for _, r := range refs {
		params = append(params, map[string]any{
			"type": "template", "key": "value", "value": "{{" + r + "}}",
		})
	}
	return container.Variable{
		Name: name,
		Type: "jsm",
		Raw:  map[string]any{"name": name, "parameter": params},
	}
}

func TestAnalyzeTriggerImpact(t *testing.T) {
	c := &container.Container{
		Variables: []container.Variable{
			chainVar("Top", "Leaf"),
			chainVar("Leaf"),
		},
		Triggers: []container.Trigger{
			{
				Name: "Fired Trigger",
				ID:   "100",
				Type: "pageview",
				Raw:  map[string]any{"name": "Fired Trigger", "filter": "{{Top}}"},
			},
			{
				Name: "Detached Trigger",
				ID:   "101",
				Type: "click",
				Raw:  map[string]any{"name": "Detached Trigger", "filter": "{{Top}}"},
			},
			{
				Name: "Paused Only Trigger",
				ID:   "102",
				Type: "click",
				Raw:  map[string]any{"name": "Paused Only Trigger", "filter": "{{Top}}"},
			},
		},
		Tags: []container.Tag{
			{Name: "Active", Type: "html", FiringTriggerIDs: []string{"100"},
				Raw: map[string]any{"name": "Active"}},
			{Name: "Sleeping", Type: "html", Paused: true, FiringTriggerIDs: []string{"102"},
				Raw: map[string]any{"name": "Sleeping"}},
		},
	}

	result := NewAnalyzer(c, typenames.NewTracker(), nil).AnalyzeTriggerImpact()

	// Detached and paused-only triggers never participate.
	if result.TriggersAnalyzed != 1 {
		t.Fatalf("TriggersAnalyzed = %d, want 1", result.TriggersAnalyzed)
	}

	detail := result.TriggerDetails[0]
	if detail.Name != "Fired Trigger" || detail.Type != "Page View" {
		t.Errorf("detail = %+v", detail)
	}
	if !reflect.DeepEqual(detail.DirectVariables, []string{"Top"}) {
		t.Errorf("DirectVariables = %v", detail.DirectVariables)
	}
	wantAll := map[string]int{"Top": 1, "Leaf": 1}
	if !reflect.DeepEqual(detail.AllVariables, wantAll) {
		t.Errorf("AllVariables = %v, want %v", detail.AllVariables, wantAll)
	}

	if result.TotalEvaluations != 2 {
		t.Errorf("TotalEvaluations = %d, want 2", result.TotalEvaluations)
	}
	if result.EvaluationsByVariable["Leaf"] != 1 {
		t.Errorf("EvaluationsByVariable = %v", result.EvaluationsByVariable)
	}
	if result.EvaluationsByType["Custom JavaScript"] != 2 {
		t.Errorf("EvaluationsByType = %v", result.EvaluationsByType)
	}
	if result.TagTypeBreakdown["Custom HTML"] != 1 {
		t.Errorf("TagTypeBreakdown = %v", result.TagTypeBreakdown)
	}
	if len(detail.AttachedTags) != 1 || detail.AttachedTags[0].Name != "Active" {
		t.Errorf("AttachedTags = %+v", detail.AttachedTags)
	}
}

func TestAnalyzeTriggerImpactRecordsUnknownTriggerTypes(t *testing.T) {
	c := &container.Container{
		Triggers: []container.Trigger{
			{
				Name: "Odd Trigger",
				ID:   "200",
				Type: "teleport",
				Raw:  map[string]any{"name": "Odd Trigger"},
			},
		},
		Tags: []container.Tag{
			{Name: "Active", Type: "html", FiringTriggerIDs: []string{"200"},
				Raw: map[string]any{"name": "Active"}},
		},
	}
	tr := typenames.NewTracker()

	result := NewAnalyzer(c, tr, nil).AnalyzeTriggerImpact()

	if got := result.TriggerDetails[0].Type; got != "Unknown Trigger (teleport)" {
		t.Errorf("detail type = %q", got)
	}
	rep := tr.Report()
	if !reflect.DeepEqual(rep.TriggerTypes, []string{"teleport"}) {
		t.Errorf("unknown trigger types = %v, want [teleport]", rep.TriggerTypes)
	}
}

func TestAnalyzeTagImpact(t *testing.T) {
	c := &container.Container{
		Variables: []container.Variable{
			chainVar("Top", "Leaf"),
			chainVar("Leaf"),
		},
		Tags: []container.Tag{
			{
				Name: "Event Tag",
				Type: "gaawe",
				Raw:  map[string]any{"name": "Event Tag", "eventName": "{{Top}}"},
			},
			{
				Name:   "Paused Tag",
				Type:   "html",
				Paused: true,
				Raw:    map[string]any{"name": "Paused Tag", "html": "{{Top}}"},
			},
		},
	}

	result := NewAnalyzer(c, typenames.NewTracker(), nil).AnalyzeTagImpact()

	if result.TagsAnalyzed != 1 {
		t.Fatalf("TagsAnalyzed = %d, want 1", result.TagsAnalyzed)
	}
	if result.TotalEvaluations != 2 {
		t.Errorf("TotalEvaluations = %d, want 2", result.TotalEvaluations)
	}

	stats := result.TagTypeStatistics["GA4 Event"]
	if stats == nil {
		t.Fatalf("no statistics for GA4 Event: %v", result.TagTypeStatistics)
	}
	if stats.Count != 1 || stats.TotalEvaluations != 2 || stats.UniqueVariables != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !reflect.DeepEqual(stats.VariablesUsed, []string{"Leaf", "Top"}) {
		t.Errorf("VariablesUsed = %v", stats.VariablesUsed)
	}
}

func TestAnalyzeTagImpactTransformations(t *testing.T) {
	c := &container.Container{
		Variables: []container.Variable{chainVar("Mapped")},
		Tags: []container.Tag{
			{
				Name: "Server Tag",
				Type: "sgtmgaaw",
				Transformations: []map[string]any{
					{"type": "rename_event", "parameter": "{{Mapped}}"},
					{"parameter": "nothing here"},
				},
				Raw: map[string]any{"name": "Server Tag"},
			},
		},
	}

	result := NewAnalyzer(c, typenames.NewTracker(), nil).AnalyzeTagImpact()

	if result.TransformationsProcessed != 2 {
		t.Errorf("TransformationsProcessed = %d, want 2", result.TransformationsProcessed)
	}
	detail := result.TagDetails[0]
	if len(detail.Transformations) != 2 {
		t.Fatalf("Transformations = %+v", detail.Transformations)
	}
	if detail.Transformations[0].Type != "rename_event" {
		t.Errorf("transformation type = %q", detail.Transformations[0].Type)
	}
	if detail.Transformations[1].Type != "Unknown" {
		t.Errorf("typeless transformation = %q", detail.Transformations[1].Type)
	}
	if !reflect.DeepEqual(detail.DirectVariables, []string{"Mapped"}) {
		t.Errorf("DirectVariables = %v", detail.DirectVariables)
	}
}

func TestAnalyzeTagImpactCustomTemplate(t *testing.T) {
	c := &container.Container{
		Variables: []container.Variable{chainVar("Template Input")},
		CustomTemplates: []container.CustomTemplate{
			{
				Name:         "Pixel Template",
				TemplateID:   "50",
				ContainerID:  "7",
				TemplateData: `sendPixel("https://x.example/?v={{Template Input}}")`,
				Raw:          map[string]any{"name": "Pixel Template"},
			},
		},
		Tags: []container.Tag{
			{
				Name: "Pixel",
				Type: "cvt_7_50",
				Raw:  map[string]any{"name": "Pixel"},
			},
		},
	}

	result := NewAnalyzer(c, typenames.NewTracker(), nil).AnalyzeTagImpact()

	if result.CustomTemplatesProcessed != 1 {
		t.Errorf("CustomTemplatesProcessed = %d, want 1", result.CustomTemplatesProcessed)
	}
	detail := result.TagDetails[0]
	if detail.CustomTemplateInfo == nil {
		t.Fatal("CustomTemplateInfo = nil")
	}
	if detail.CustomTemplateInfo.Name != "Pixel Template" || detail.CustomTemplateInfo.TemplateID != "50" {
		t.Errorf("CustomTemplateInfo = %+v", detail.CustomTemplateInfo)
	}
	if !reflect.DeepEqual(detail.DirectVariables, []string{"Template Input"}) {
		t.Errorf("DirectVariables = %v", detail.DirectVariables)
	}
	if detail.Type != "Custom Template Tag" {
		t.Errorf("tag display type = %q", detail.Type)
	}
}
