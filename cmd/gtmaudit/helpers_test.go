package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain export",
			input: "GTM-XYZ_workspace.json",
			want:  "GTM-XYZ_workspace_analysis_report.json",
		},
		{
			name:  "copy indicator stripped",
			input: "GTM-XYZ_workspace (1).json",
			want:  "GTM-XYZ_workspace_analysis_report.json",
		},
		{
			name:  "double digit copy indicator",
			input: "export (12).json",
			want:  "export_analysis_report.json",
		},
		{
			name:  "parenthetical mid-name kept",
			input: "export (prod) final.json",
			want:  "export (prod) final_analysis_report.json",
		},
		{
			name:  "directory preserved",
			input: filepath.Join("exports", "container (2).json"),
			want:  filepath.Join("exports", "container_analysis_report.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(tt.input); got != tt.want {
				t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatOutput(t *testing.T) {
	payload := map[string]any{"name": "value", "count": 3}

	jsonOut, err := FormatOutput(payload, FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(jsonOut), &decoded); err != nil {
		t.Errorf("json output does not parse: %v", err)
	}

	yamlOut, err := FormatOutput(payload, FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yamlOut, "name: value") {
		t.Errorf("yaml output = %q", yamlOut)
	}

	if _, err := FormatOutput(payload, OutputFormat("xml")); err == nil {
		t.Error("unknown format accepted")
	}

	// Empty format defaults to JSON.
	if _, err := FormatOutput(payload, OutputFormat("")); err != nil {
		t.Errorf("empty format: %v", err)
	}
}
