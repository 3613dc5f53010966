// Package graphexport converts a finished analysis report into a graph
// dataset (nodes and relationships) for downstream graph-database tooling.
// Only the export format is produced here; loading the dataset into a
// database is someone else's job.
package graphexport

import (
	"fmt"
	"sort"
	"strings"

	"gtmaudit/internal/report"
	"gtmaudit/internal/typenames"
	"gtmaudit/internal/usage"
)

// Options bounds the exported graph.
type Options struct {
	// MinConnections drops variables with fewer total references.
	MinConnections int

	// MaxNodes caps the number of variables exported, keeping the most
	// referenced ones. Zero means no cap.
	MaxNodes int
}

// Node is one graph vertex.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// Relationship is one directed edge.
type Relationship struct {
	Type       string         `json:"type"`
	StartNode  string         `json:"startNode"`
	EndNode    string         `json:"endNode"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Dataset is the complete export.
type Dataset struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// builder tracks emitted node ids so shared components appear once.
type builder struct {
	dataset *Dataset
	emitted map[string]struct{}
}

func (b *builder) addNode(n Node) {
	if _, ok := b.emitted[n.ID]; ok {
		return
	}
	b.emitted[n.ID] = struct{}{}
	b.dataset.Nodes = append(b.dataset.Nodes, n)
}

func (b *builder) addEdge(rel Relationship) {
	b.dataset.Relationships = append(b.dataset.Relationships, rel)
}

// usageEdgeKinds maps usage categories to the relationship property that
// describes how the component consumes the variable.
var usageEdgeKinds = map[string]string{
	usage.CategoryTags:            "direct",
	usage.CategoryTriggers:        "condition",
	usage.CategoryVariables:       "nested",
	usage.CategoryTransformations: "transform",
	usage.CategoryClients:         "request",
	usage.CategoryCustomTemplates: "template",
}

// componentLabels maps usage categories to node labels and id prefixes.
var componentLabels = map[string]struct {
	label  string
	prefix string
}{
	usage.CategoryTags:            {"Tag", "tag"},
	usage.CategoryTriggers:        {"Trigger", "trigger"},
	usage.CategoryTransformations: {"Transformation", "transformation"},
	usage.CategoryClients:         {"Client", "client"},
	usage.CategoryCustomTemplates: {"CustomTemplate", "template"},
}

// Build converts a report into a graph dataset. Variables are selected by
// reference count under the configured bounds; every component referencing
// a selected variable becomes a node with a USES_VARIABLE edge.
func Build(r *report.Report, opts Options) *Dataset {
	b := &builder{
		dataset: &Dataset{Nodes: []Node{}, Relationships: []Relationship{}},
		emitted: make(map[string]struct{}),
	}

	containerID := "container_main"
	b.addNode(Node{
		ID:     containerID,
		Labels: []string{"Container"},
		Properties: map[string]any{
			"name":            "GTM Container",
			"type":            r.Summary.ContainerType,
			"total_variables": r.Summary.TotalVariables,
			"total_tags":      r.Summary.TotalTags,
			"total_triggers":  r.Summary.TotalTriggers,
			"health_score":    healthScore(r),
		},
	})

	selected := selectVariables(r.VariableUsageCounts, opts)

	// Full variable nodes go in before any edges so a dependency stub never
	// shadows a selected variable under the same id.
	for _, name := range selected {
		rec := r.VariableUsageCounts[name]
		b.addNode(Node{
			ID:     nodeID("var", name),
			Labels: []string{"Variable", labelize(variableCategory(name, rec))},
			Properties: map[string]any{
				"name":                name,
				"type":                recordType(rec),
				"category":            variableCategory(name, rec),
				"total_references":    rec.TotalReferences,
				"evaluation_contexts": rec.EvaluationContexts,
				"is_used":             rec.TotalReferences > 0,
			},
		})
	}

	for _, name := range selected {
		rec := r.VariableUsageCounts[name]
		varID := nodeID("var", name)

		for _, category := range usage.Categories {
			for _, componentName := range rec.UsageComponents[category] {
				if category == usage.CategoryVariables {
					// Variable-to-variable dependency: the edge target
					// is another variable node.
					if componentName == name {
						continue
					}
					refID := nodeID("var", componentName)
					b.addNode(Node{
						ID:     refID,
						Labels: []string{"Variable"},
						Properties: map[string]any{
							"name": componentName,
						},
					})
					b.addEdge(Relationship{
						Type:      "USES_VARIABLE",
						StartNode: refID,
						EndNode:   varID,
						Properties: map[string]any{
							"usage_type": usageEdgeKinds[category],
						},
					})
					continue
				}

				spec := componentLabels[category]
				compID := nodeID(spec.prefix, componentName)
				b.addNode(Node{
					ID:     compID,
					Labels: []string{spec.label},
					Properties: map[string]any{
						"name": componentName,
					},
				})
				b.addEdge(Relationship{
					Type:      "USES_VARIABLE",
					StartNode: compID,
					EndNode:   varID,
					Properties: map[string]any{
						"usage_type": usageEdgeKinds[category],
					},
				})
			}
		}
	}

	return b.dataset
}

// selectVariables applies the connection floor and node cap, returning
// variable names ordered by reference count (descending), then name.
func selectVariables(counts map[string]*usage.Record, opts Options) []string {
	names := make([]string, 0, len(counts))
	for name, rec := range counts {
		if rec.TotalReferences == 0 {
			continue
		}
		if opts.MinConnections > 0 && rec.TotalReferences < opts.MinConnections {
			continue
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		ri, rj := counts[names[i]], counts[names[j]]
		if ri.TotalReferences != rj.TotalReferences {
			return ri.TotalReferences > rj.TotalReferences
		}
		return names[i] < names[j]
	})

	if opts.MaxNodes > 0 && len(names) > opts.MaxNodes {
		names = names[:opts.MaxNodes]
	}
	return names
}

func healthScore(r *report.Report) int {
	return 100 - r.Summary.UnusedVariables - r.Summary.DuplicateGroups*2
}

func recordType(rec *usage.Record) string {
	t, _ := rec.Variable["type"].(string)
	if t == "" {
		return "unknown"
	}
	return t
}

func variableCategory(name string, rec *usage.Record) string {
	varType := recordType(rec)
	switch {
	case strings.HasPrefix(varType, "cvt_"):
		return "Custom Template Variable"
	case typenames.IsInternalName(name):
		return "GTM Internal Variable"
	default:
		displayName, _ := typenames.VariableTypeName(varType)
		return displayName
	}
}

// nodeID builds a stable graph id from a prefix and a display name.
func nodeID(prefix, name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return fmt.Sprintf("%s_%s", prefix, sb.String())
}

// labelize turns a display category into a legal node label.
func labelize(category string) string {
	var sb strings.Builder
	for _, r := range category {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "Unknown"
	}
	return sb.String()
}
