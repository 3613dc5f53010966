// Package usage builds the per-variable usage accounting for a container:
// which components reference each variable, how often, and which variables
// and custom templates nothing references at all.
package usage

import (
	"log/slog"
	"strings"

	"gtmaudit/internal/container"
	"gtmaudit/internal/refs"
)

// Indexer scans the container's six component collections for variable
// references and aggregates usage per variable name.
type Indexer struct {
	container         *container.Container
	includePausedTags bool
	logger            *slog.Logger
}

// NewIndexer creates an indexer over an immutable container snapshot.
func NewIndexer(c *container.Container, includePausedTags bool, logger *slog.Logger) *Indexer {
	return &Indexer{
		container:         c,
		includePausedTags: includePausedTags,
		logger:            logger,
	}
}

// scanned is one component prepared for reference scanning.
type scanned struct {
	category     string
	name         string
	raw          map[string]any
	paused       bool   // tags only
	varName      string // variables only: self-reference exclusion
	varType      string // variables only: cvt_* reattribution
	templateData string // custom templates only
}

func (ix *Indexer) components() []scanned {
	c := ix.container
	out := make([]scanned, 0,
		len(c.Tags)+len(c.Triggers)+len(c.Variables)+
			len(c.Transformations)+len(c.Clients)+len(c.CustomTemplates))

	for i := range c.Tags {
		t := &c.Tags[i]
		if t.Paused && !ix.includePausedTags {
			continue
		}
		out = append(out, scanned{
			category: CategoryTags,
			name:     displayName(t.Name, CategoryTags),
			raw:      t.Raw,
			paused:   t.Paused,
		})
	}
	for i := range c.Triggers {
		out = append(out, scanned{
			category: CategoryTriggers,
			name:     displayName(c.Triggers[i].Name, CategoryTriggers),
			raw:      c.Triggers[i].Raw,
		})
	}
	for i := range c.Variables {
		v := &c.Variables[i]
		out = append(out, scanned{
			category: CategoryVariables,
			name:     displayName(v.Name, CategoryVariables),
			raw:      v.Raw,
			varName:  v.Name,
			varType:  v.Type,
		})
	}
	for i := range c.Transformations {
		out = append(out, scanned{
			category: CategoryTransformations,
			name:     displayName(c.Transformations[i].Name, CategoryTransformations),
			raw:      c.Transformations[i].Raw,
		})
	}
	for i := range c.Clients {
		out = append(out, scanned{
			category: CategoryClients,
			name:     displayName(c.Clients[i].Name, CategoryClients),
			raw:      c.Clients[i].Raw,
		})
	}
	for i := range c.CustomTemplates {
		t := &c.CustomTemplates[i]
		out = append(out, scanned{
			category:     CategoryCustomTemplates,
			name:         displayName(t.Name, CategoryCustomTemplates),
			raw:          t.Raw,
			templateData: t.TemplateData,
		})
	}
	return out
}

// references returns the reference set a component contributes, with the
// custom-template free-text source folded in and the component's own name
// removed for variables.
func (comp *scanned) references() map[string]struct{} {
	found := refs.Scan(comp.raw)
	if comp.templateData != "" {
		for name := range refs.ScanString(comp.templateData) {
			found[name] = struct{}{}
		}
	}
	if comp.varName != "" {
		delete(found, comp.varName)
	}
	return found
}

// Counts produces a usage Record per variable name.
func (ix *Indexer) Counts() map[string]*Record {
	counts := make(map[string]*Record, len(ix.container.Variables))
	for i := range ix.container.Variables {
		v := &ix.container.Variables[i]
		counts[v.Name] = newRecord(v.Raw)
	}

	for _, comp := range ix.components() {
		for _, name := range refs.SortedNames(comp.references()) {
			rec, tracked := counts[name]
			if !tracked {
				// Built-in or runtime-only reference; nothing to
				// account against.
				continue
			}

			// Raw carries templateData as a plain string value, so
			// occurrence counting covers it without a second pass.
			occurrences := refs.CountOccurrences(comp.raw, name)
			if occurrences == 0 {
				continue
			}

			category := comp.category
			if comp.category == CategoryVariables && strings.HasPrefix(comp.varType, "cvt_") {
				// A custom-template variable referencing another
				// variable is cascading template evaluation, not
				// a plain variable chain.
				category = CategoryCustomTemplates
			}

			rec.UsageLocations[category]++
			rec.TotalReferences += occurrences

			sourceName := comp.name
			if comp.paused {
				sourceName += " (PAUSED)"
			}
			rec.UsageComponents[category] = append(rec.UsageComponents[category], sourceName)
		}
	}

	for _, rec := range counts {
		finalizeRecord(rec)
	}

	if ix.logger != nil {
		ix.logger.Debug("usage indexing completed",
			"variables", len(counts),
			"includePausedTags", ix.includePausedTags)
	}

	return counts
}

// Details produces the per-variable referencing-component name lists.
// Unlike Counts, details keep cvt_*-typed variables in the variables bucket
// and never suffix paused tags; they answer "where is this name mentioned",
// not "how would it be evaluated".
func (ix *Indexer) Details() map[string]*Details {
	details := make(map[string]*Details, len(ix.container.Variables))
	for i := range ix.container.Variables {
		details[ix.container.Variables[i].Name] = newDetails()
	}

	for _, comp := range ix.components() {
		for _, name := range refs.SortedNames(comp.references()) {
			d, tracked := details[name]
			if !tracked {
				continue
			}
			d.append(comp.category, comp.name)
			d.TotalUsage++
		}
	}

	return details
}

// UnusedVariables returns the variables whose total reference count is zero,
// in container order.
func (ix *Indexer) UnusedVariables(counts map[string]*Record) []UnusedVariable {
	unused := make([]UnusedVariable, 0)
	for i := range ix.container.Variables {
		v := &ix.container.Variables[i]
		rec := counts[v.Name]
		if rec == nil || rec.TotalReferences == 0 {
			unused = append(unused, UnusedVariable{
				Name:       v.Name,
				VariableID: v.ID,
				Type:       v.Type,
			})
		}
	}
	return unused
}

func newRecord(raw map[string]any) *Record {
	locations := make(map[string]int, len(Categories))
	components := make(map[string][]string, len(Categories))
	for _, cat := range Categories {
		locations[cat] = 0
		components[cat] = []string{}
	}
	return &Record{
		Variable:        raw,
		UsageLocations:  locations,
		UsageComponents: components,
	}
}

func finalizeRecord(rec *Record) {
	contexts := 0
	total := 0
	for _, n := range rec.UsageLocations {
		if n > 0 {
			contexts++
		}
		total += n
	}
	rec.EvaluationContexts = contexts
	rec.PotentialReevaluations = total
	rec.MinimumReevaluations = contexts
}

func newDetails() *Details {
	return &Details{
		UsedInTags:            []string{},
		UsedInTriggers:        []string{},
		UsedInTransformations: []string{},
		UsedInVariables:       []string{},
		UsedInClients:         []string{},
		UsedInCustomTemplates: []string{},
	}
}

func (d *Details) append(category, componentName string) {
	switch category {
	case CategoryTags:
		d.UsedInTags = append(d.UsedInTags, componentName)
	case CategoryTriggers:
		d.UsedInTriggers = append(d.UsedInTriggers, componentName)
	case CategoryTransformations:
		d.UsedInTransformations = append(d.UsedInTransformations, componentName)
	case CategoryVariables:
		d.UsedInVariables = append(d.UsedInVariables, componentName)
	case CategoryClients:
		d.UsedInClients = append(d.UsedInClients, componentName)
	case CategoryCustomTemplates:
		d.UsedInCustomTemplates = append(d.UsedInCustomTemplates, componentName)
	}
}

func displayName(name, category string) string {
	if name == "" {
		return "Unnamed " + category
	}
	return name
}
