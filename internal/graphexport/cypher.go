package graphexport

import (
	"fmt"
	"sort"
	"strings"
)

// Cypher renders the dataset as executable Cypher statements: one MERGE per
// node, one MATCH+MERGE per relationship. Statements are self-contained so
// the file can be piped into any Cypher shell.
func (d *Dataset) Cypher() []string {
	statements := make([]string, 0, len(d.Nodes)+len(d.Relationships))

	for _, node := range d.Nodes {
		statements = append(statements, fmt.Sprintf(
			"MERGE (n:%s {id: %s}) SET n += {%s};",
			strings.Join(node.Labels, ":"),
			cypherString(node.ID),
			cypherProperties(node.Properties),
		))
	}

	for _, rel := range d.Relationships {
		stmt := fmt.Sprintf(
			"MATCH (a {id: %s}), (b {id: %s}) MERGE (a)-[r:%s]->(b)",
			cypherString(rel.StartNode),
			cypherString(rel.EndNode),
			rel.Type,
		)
		if len(rel.Properties) > 0 {
			stmt += " SET r += {" + cypherProperties(rel.Properties) + "}"
		}
		statements = append(statements, stmt+";")
	}

	return statements
}

func cypherProperties(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+cypherValue(props[k]))
	}
	return strings.Join(parts, ", ")
}

func cypherValue(v any) string {
	switch value := v.(type) {
	case string:
		return cypherString(value)
	case bool:
		return fmt.Sprintf("%t", value)
	case int:
		return fmt.Sprintf("%d", value)
	case float64:
		return fmt.Sprintf("%g", value)
	default:
		return cypherString(fmt.Sprintf("%v", value))
	}
}

func cypherString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
