package graphexport

import (
	"strings"
	"testing"

	"gtmaudit/internal/container"
	"gtmaudit/internal/report"
)

const graphExport = `{
  "containerVersion": {
    "variable": [
      {
        "name": "Hot Variable",
        "variableId": "1",
        "type": "v",
        "parameter": [{"type": "template", "key": "name", "value": "hot"}]
      },
      {
        "name": "Warm Variable",
        "variableId": "2",
        "type": "jsm",
        "parameter": [{"type": "template", "key": "javascript", "value": "return {{Hot Variable}};"}]
      },
      {
        "name": "Cold Variable",
        "variableId": "3",
        "type": "c",
        "parameter": [{"type": "template", "key": "value", "value": "static"}]
      }
    ],
    "tag": [
      {
        "name": "Tag One",
        "tagId": "10",
        "type": "html",
        "parameter": [{"type": "template", "key": "html",
          "value": "{{Hot Variable}} {{Hot Variable}} {{Warm Variable}}"}]
      }
    ]
  }
}`

func buildDataset(t *testing.T, opts Options) *Dataset {
	t.Helper()
	c, err := container.Load([]byte(graphExport))
	if err != nil {
		t.Fatal(err)
	}
	r := report.NewBuilder(report.DefaultOptions(), nil).Build(c)
	return Build(r, opts)
}

func nodeByID(d *Dataset, id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

func TestBuildDataset(t *testing.T) {
	d := buildDataset(t, Options{})

	cn := nodeByID(d, "container_main")
	if cn == nil {
		t.Fatal("no container node")
	}
	if cn.Properties["type"] != "Web" || cn.Properties["total_variables"] != 3 {
		t.Errorf("container properties = %+v", cn.Properties)
	}

	hot := nodeByID(d, "var_hot_variable")
	if hot == nil {
		t.Fatal("no node for Hot Variable")
	}
	if hot.Properties["total_references"] != 3 {
		t.Errorf("total_references = %v, want 3", hot.Properties["total_references"])
	}
	if hot.Properties["category"] != "Data Layer Variable" {
		t.Errorf("category = %v", hot.Properties["category"])
	}

	if nodeByID(d, "var_cold_variable") != nil {
		t.Error("unreferenced variable must not be exported")
	}

	// Tag One consumes both exported variables through one node.
	if nodeByID(d, "tag_tag_one") == nil {
		t.Error("no node for Tag One")
	}

	var tagEdges, nestedEdges int
	for _, rel := range d.Relationships {
		if rel.Type != "USES_VARIABLE" {
			t.Errorf("unexpected relationship type %q", rel.Type)
		}
		switch rel.Properties["usage_type"] {
		case "direct":
			tagEdges++
		case "nested":
			nestedEdges++
		}
	}
	if tagEdges != 2 {
		t.Errorf("direct edges = %d, want 2", tagEdges)
	}
	// Warm Variable -> Hot Variable dependency.
	if nestedEdges != 1 {
		t.Errorf("nested edges = %d, want 1", nestedEdges)
	}
}

func TestBuildDatasetBounds(t *testing.T) {
	t.Run("max nodes keeps most referenced", func(t *testing.T) {
		d := buildDataset(t, Options{MaxNodes: 1})
		if nodeByID(d, "var_hot_variable") == nil {
			t.Error("most referenced variable dropped")
		}
		// Warm Variable survives only as an edge endpoint stub, never as a
		// selected variable with full properties.
		if n := nodeByID(d, "var_warm_variable"); n != nil {
			if _, ok := n.Properties["total_references"]; ok {
				t.Error("capped variable exported with full properties")
			}
		}
	})

	t.Run("min connections floor", func(t *testing.T) {
		d := buildDataset(t, Options{MinConnections: 2})
		if nodeByID(d, "var_hot_variable") == nil {
			t.Error("hot variable dropped by floor")
		}
		for _, n := range d.Nodes {
			if n.ID == "var_warm_variable" {
				if _, ok := n.Properties["total_references"]; ok {
					t.Error("floored variable fully exported")
				}
			}
		}
	})
}

func TestCypherStatements(t *testing.T) {
	d := buildDataset(t, Options{})
	statements := d.Cypher()

	if len(statements) != len(d.Nodes)+len(d.Relationships) {
		t.Fatalf("got %d statements, want %d",
			len(statements), len(d.Nodes)+len(d.Relationships))
	}

	if !strings.HasPrefix(statements[0], "MERGE (n:Container {id: 'container_main'})") {
		t.Errorf("container statement = %q", statements[0])
	}
	for _, stmt := range statements {
		if !strings.HasSuffix(stmt, ";") {
			t.Errorf("statement not terminated: %q", stmt)
		}
	}
}

func TestCypherStringEscaping(t *testing.T) {
	d := &Dataset{
		Nodes: []Node{{
			ID:     "n1",
			Labels: []string{"Variable"},
			Properties: map[string]any{
				"name": `it's a \ test`,
			},
		}},
	}
	stmt := d.Cypher()[0]
	if !strings.Contains(stmt, `it\'s a \\ test`) {
		t.Errorf("escaping failed: %q", stmt)
	}
}

func TestNodeIDSanitization(t *testing.T) {
	if got := nodeID("var", "GA4 - Config (Prod)"); got != "var_ga4___config__prod_" {
		t.Errorf("nodeID = %q", got)
	}
	if got := labelize("Unknown (zzz)"); got != "Unknownzzz" {
		t.Errorf("labelize = %q", got)
	}
}
