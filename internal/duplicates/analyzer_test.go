package duplicates

import (
	"reflect"
	"testing"

	"gtmaudit/internal/container"
)

func dupVar(name, varType string, params map[string]string) container.Variable {
	v := container.Variable{Name: name, ID: name + "-id", Type: varType}
	for k, val := range params {
		v.Parameters = append(v.Parameters, container.Parameter{Key: k, Value: val})
	}
	return v
}

func groupNames(g Group) []string {
	names := make([]string, 0, len(g))
	for _, e := range g {
		names = append(names, e.Name)
	}
	return names
}

func TestFindDataLayerDuplicates(t *testing.T) {
	vars := []container.Variable{
		dupVar("DL A", "v", map[string]string{"name": "user.id"}),
		dupVar("DL B", "v", map[string]string{"name": "user.id", "dataLayerVersion": "2"}),
		dupVar("DL V1", "v", map[string]string{"name": "user.id", "dataLayerVersion": "1"}),
		dupVar("DL Other", "v", map[string]string{"name": "user.email"}),
		dupVar("DL Nameless", "v", nil),
	}

	result := Find(vars)

	if len(result.DataLayer) != 1 {
		t.Fatalf("got %d data layer groups, want 1: %+v", len(result.DataLayer), result.DataLayer)
	}
	// The missing version defaults to 2, so DL A and DL B group together
	// while the explicit version 1 stays apart.
	want := []string{"DL A", "DL B"}
	if got := groupNames(result.DataLayer[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("group = %v, want %v", got, want)
	}
	if result.DataLayer[0][0].Path != "user.id" || result.DataLayer[0][0].Version != "2" {
		t.Errorf("entry = %+v", result.DataLayer[0][0])
	}
}

func TestFindPerBucketGrouping(t *testing.T) {
	vars := []container.Variable{
		dupVar("ED A", "ed", map[string]string{"keyPath": "event.value"}),
		dupVar("ED B", "ed", map[string]string{"keyPath": "event.value"}),
		dupVar("Cookie A", "k", map[string]string{"name": "session"}),
		dupVar("Cookie B", "k", map[string]string{"name": "session"}),
		dupVar("JS A", "j", map[string]string{"name": "window.foo"}),
		dupVar("JS B", "j", map[string]string{"name": "window.foo"}),
	}

	result := Find(vars)

	if len(result.EventData) != 1 || len(result.Cookie) != 1 || len(result.JSVariable) != 1 {
		t.Fatalf("bucket counts = %d/%d/%d, want 1/1/1",
			len(result.EventData), len(result.Cookie), len(result.JSVariable))
	}
	if result.EventData[0][0].KeyPath != "event.value" {
		t.Errorf("event data entry = %+v", result.EventData[0][0])
	}
	if result.Cookie[0][0].CookieName != "session" {
		t.Errorf("cookie entry = %+v", result.Cookie[0][0])
	}
	if result.JSVariable[0][0].JSVarName != "window.foo" {
		t.Errorf("js variable entry = %+v", result.JSVariable[0][0])
	}

	if result.GroupCount() != 3 {
		t.Errorf("GroupCount() = %d, want 3", result.GroupCount())
	}
	if result.VariableCount() != 6 {
		t.Errorf("VariableCount() = %d, want 6", result.VariableCount())
	}
}

func TestFindURLDuplicatesQueryKeyAware(t *testing.T) {
	vars := []container.Variable{
		dupVar("GCLID A", "u", map[string]string{"component": "QUERY", "queryKey": "gclid"}),
		dupVar("GCLID B", "u", map[string]string{"component": "QUERY", "queryKey": "gclid"}),
		dupVar("FBCLID", "u", map[string]string{"component": "QUERY", "queryKey": "fbclid"}),
		dupVar("Host A", "u", map[string]string{"component": "HOST"}),
		dupVar("Host B", "u", map[string]string{"component": "HOST"}),
		dupVar("Bare A", "u", nil),
		dupVar("Bare B", "u", nil),
	}

	result := Find(vars)

	if len(result.URL) != 3 {
		t.Fatalf("got %d url groups, want 3: %+v", len(result.URL), result.URL)
	}
	if got := groupNames(result.URL[0]); !reflect.DeepEqual(got, []string{"GCLID A", "GCLID B"}) {
		t.Errorf("query group = %v", got)
	}
	if got := groupNames(result.URL[1]); !reflect.DeepEqual(got, []string{"Host A", "Host B"}) {
		t.Errorf("host group = %v", got)
	}
	// Component-less URL variables group under UNSPECIFIED.
	if result.URL[2][0].Component != "UNSPECIFIED" {
		t.Errorf("bare component = %q", result.URL[2][0].Component)
	}
}

func TestFindCustomTemplateDuplicates(t *testing.T) {
	vars := []container.Variable{
		dupVar("CT A", "cvt_7_50", map[string]string{"queryParamName": "coupon"}),
		dupVar("CT B", "cvt_7_50", map[string]string{"queryParamName": "coupon"}),
		dupVar("CT Other Param", "cvt_7_50", map[string]string{"queryParamName": "promo"}),
		dupVar("CT Other Type", "cvt_7_51", map[string]string{"queryParamName": "coupon"}),
		dupVar("CT No Key", "cvt_7_50", map[string]string{"irrelevant": "x"}),
	}

	result := Find(vars)

	if len(result.CustomTemplate) != 1 {
		t.Fatalf("got %d custom template groups, want 1: %+v",
			len(result.CustomTemplate), result.CustomTemplate)
	}
	want := []string{"CT A", "CT B"}
	if got := groupNames(result.CustomTemplate[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("group = %v, want %v", got, want)
	}
	if result.CustomTemplate[0][0].Parameters["queryParamName"] != "coupon" {
		t.Errorf("entry parameters = %+v", result.CustomTemplate[0][0].Parameters)
	}
}

func TestFindSingletonsDropped(t *testing.T) {
	vars := []container.Variable{
		dupVar("Only One", "v", map[string]string{"name": "solo"}),
	}
	result := Find(vars)

	if result.GroupCount() != 0 {
		t.Errorf("GroupCount() = %d, want 0", result.GroupCount())
	}
	if result.Other == nil || len(result.Other) != 0 {
		t.Errorf("Other = %v, want empty non-nil", result.Other)
	}
}

func TestSummarizeFormatValue(t *testing.T) {
	fv := map[string]any{
		"convertNullToValue": map[string]any{"type": "template", "value": "none"},
		"caseConversionType": "lowercase",
		"unknownOption":      "ignored",
	}

	got := SummarizeFormatValue(fv)
	want := map[string]string{
		"Convert NULL to": "none",
		"Case conversion": "lowercase",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SummarizeFormatValue() = %v, want %v", got, want)
	}

	if SummarizeFormatValue(nil) != nil {
		t.Error("nil formatValue must summarize to nil")
	}
	if SummarizeFormatValue(map[string]any{"unknownOption": "x"}) != nil {
		t.Error("unrecognized-only formatValue must summarize to nil")
	}
}
