package report

import (
	"encoding/json"
	"reflect"
	"testing"

	"gtmaudit/internal/container"
)

const webExport = `{
  "containerVersion": {
    "variable": [
      {
        "name": "Page Path",
        "variableId": "1",
        "type": "v",
        "parameter": [{"type": "template", "key": "name", "value": "page.path"}]
      },
      {
        "name": "Page Path Copy",
        "variableId": "2",
        "type": "v",
        "parameter": [{"type": "template", "key": "name", "value": "page.path"}]
      },
      {
        "name": "Derived",
        "variableId": "3",
        "type": "jsm",
        "parameter": [{"type": "template", "key": "javascript", "value": "return {{Page Path}};"}]
      },
      {
        "name": "Orphan",
        "variableId": "4",
        "type": "c",
        "parameter": [{"type": "template", "key": "value", "value": "static"}]
      }
    ],
    "tag": [
      {
        "name": "GA4 Event",
        "tagId": "10",
        "type": "gaawe",
        "firingTriggerId": ["100"],
        "parameter": [{"type": "template", "key": "eventName", "value": "{{Derived}}"}]
      },
      {
        "name": "Paused Pixel",
        "tagId": "11",
        "type": "html",
        "paused": true,
        "parameter": [{"type": "template", "key": "html", "value": "{{Page Path Copy}}"}]
      }
    ],
    "trigger": [
      {"name": "All Pages", "triggerId": "100", "type": "pageview",
       "filter": [{"parameter": [{"key": "arg0", "value": "{{Page Path}}"}]}]}
    ],
    "builtInVariable": [
      {"type": "PAGE_URL", "name": "Page URL", "enabled": true},
      {"type": "MYSTERY_TYPE", "name": "Mystery", "enabled": false}
    ]
  }
}`

func buildTestReport(t *testing.T, includePaused bool) *Report {
	t.Helper()
	c, err := container.Load([]byte(webExport))
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.IncludePausedTags = includePaused
	return NewBuilder(opts, nil).Build(c)
}

func TestBuildSummary(t *testing.T) {
	r := buildTestReport(t, true)
	s := r.Summary

	if s.ContainerType != "Web" {
		t.Errorf("ContainerType = %q, want Web", s.ContainerType)
	}
	if s.TotalVariables != 4 || s.TotalTags != 2 || s.TotalTriggers != 1 {
		t.Errorf("totals = %+v", s)
	}
	if s.PausedTags != 1 || !s.IncludePausedTags {
		t.Errorf("paused accounting = %+v", s)
	}
	if s.UnusedVariables != 1 {
		t.Errorf("UnusedVariables = %d, want 1 (Orphan)", s.UnusedVariables)
	}
	if s.DuplicateGroups != 1 || s.TotalDuplicates != 2 {
		t.Errorf("duplicates = %d groups / %d variables", s.DuplicateGroups, s.TotalDuplicates)
	}
	if s.TotalBuiltInVariables != 2 {
		t.Errorf("TotalBuiltInVariables = %d", s.TotalBuiltInVariables)
	}
}

func TestBuildClientTypeBreakdown(t *testing.T) {
	r := buildTestReport(t, true)
	if r.Summary.ClientTypeBreakdown != nil {
		t.Errorf("web container breakdown = %v, want nil", r.Summary.ClientTypeBreakdown)
	}

	const serverExport = `{
	  "containerVersion": {
	    "client": [
	      {"name": "GA4", "clientId": "1", "type": "ga4"},
	      {"name": "Measurement", "clientId": "2", "type": "ga4"},
	      {"name": "Homegrown", "clientId": "3", "type": "pigeon_post"}
	    ]
	  }
	}`
	c, err := container.Load([]byte(serverExport))
	if err != nil {
		t.Fatal(err)
	}
	rs := NewBuilder(DefaultOptions(), nil).Build(c)

	if rs.Summary.ContainerType != "Server-side" {
		t.Errorf("ContainerType = %q", rs.Summary.ContainerType)
	}
	want := map[string]int{
		"Google Analytics 4":           2,
		"Unknown Client (pigeon_post)": 1,
	}
	if !reflect.DeepEqual(rs.Summary.ClientTypeBreakdown, want) {
		t.Errorf("ClientTypeBreakdown = %v, want %v", rs.Summary.ClientTypeBreakdown, want)
	}
	if !reflect.DeepEqual(rs.UnknownTypes.ClientTypes, []string{"pigeon_post"}) {
		t.Errorf("unknown client types = %v, want [pigeon_post]", rs.UnknownTypes.ClientTypes)
	}
}

func TestBuildUnusedGainsDetails(t *testing.T) {
	r := buildTestReport(t, true)

	if len(r.UnusedVariables) != 1 {
		t.Fatalf("unused = %+v", r.UnusedVariables)
	}
	u := r.UnusedVariables[0]
	if u.Name != "Orphan" {
		t.Errorf("unused variable = %q", u.Name)
	}
	if u.Details == nil || u.Details.TotalUsage != 0 {
		t.Errorf("unused details = %+v", u.Details)
	}
}

func TestBuildPausedPolicyChangesUnused(t *testing.T) {
	// Page Path Copy is referenced only by a paused tag; excluding paused
	// tags makes it unused.
	r := buildTestReport(t, false)

	names := make(map[string]bool)
	for _, u := range r.UnusedVariables {
		names[u.Name] = true
	}
	if !names["Page Path Copy"] || !names["Orphan"] || len(names) != 2 {
		t.Errorf("unused = %v, want {Page Path Copy, Orphan}", names)
	}
	if r.Summary.IncludePausedTags {
		t.Error("IncludePausedTags = true in summary")
	}
}

func TestBuildImpactAndBuiltIns(t *testing.T) {
	r := buildTestReport(t, true)

	if r.TriggerImpact.TriggersAnalyzed != 1 {
		t.Errorf("TriggersAnalyzed = %d", r.TriggerImpact.TriggersAnalyzed)
	}
	// Paused tags never fire, so only the GA4 tag is analyzed.
	if r.TagImpact.TagsAnalyzed != 1 {
		t.Errorf("TagsAnalyzed = %d", r.TagImpact.TagsAnalyzed)
	}

	bi := r.BuiltInVariables
	if bi.TotalBuiltInVariables != 2 || len(bi.BuiltInDetails) != 2 {
		t.Errorf("built-in analysis = %+v", bi)
	}
	if bi.BuiltInDetails[0].HumanName != "Page URL" || !bi.BuiltInDetails[0].Enabled {
		t.Errorf("built-in detail = %+v", bi.BuiltInDetails[0])
	}

	// The unrecognized built-in discriminator lands in the gap report.
	if len(r.UnknownTypes.BuiltInTypes) != 1 || r.UnknownTypes.BuiltInTypes[0] != "MYSTERY_TYPE" {
		t.Errorf("UnknownTypes = %+v", r.UnknownTypes)
	}
}

func TestReportSerializesWithStableKeys(t *testing.T) {
	r := buildTestReport(t, true)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"summary", "unused_variables", "unused_custom_templates",
		"duplicate_variables", "builtin_variables", "variable_usage_details",
		"variable_usage_counts", "custom_template_usage",
		"trigger_evaluation_impact", "tag_evaluation_impact", "unknown_types",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("report JSON missing key %q", key)
		}
	}
}
