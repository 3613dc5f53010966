// Package impact estimates per-variable evaluation frequency: how many
// times each variable would be resolved during one event cycle, from the
// trigger side (condition checks) and the tag side (tag firing). The
// numbers are a static heuristic over the reference graph, not a runtime
// measurement.
package impact

import (
	"log/slog"
	"sort"
	"strings"

	"gtmaudit/internal/container"
	"gtmaudit/internal/refs"
	"gtmaudit/internal/typenames"
)

// Analyzer computes trigger- and tag-side evaluation impact over a fixed
// container snapshot.
type Analyzer struct {
	container *container.Container
	resolver  *refs.Resolver
	names     *typenames.Tracker
	logger    *slog.Logger
}

// NewAnalyzer creates an impact analyzer. The tracker accumulates any
// unknown type discriminators encountered while labeling results.
func NewAnalyzer(c *container.Container, names *typenames.Tracker, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		container: c,
		resolver:  refs.NewResolver(c.Variables),
		names:     names,
		logger:    logger,
	}
}

// AnalyzeTriggerImpact estimates variable evaluations caused by trigger
// condition checks. A trigger participates only when attached to at least
// one non-paused tag.
func (a *Analyzer) AnalyzeTriggerImpact() *TriggerImpact {
	result := &TriggerImpact{
		EvaluationsByType:     make(map[string]int),
		EvaluationsByVariable: make(map[string]int),
		TagTypeBreakdown:      make(map[string]int),
		TriggerDetails:        []TriggerDetail{},
	}

	triggerTags := make(map[string][]*container.Tag)
	for i := range a.container.Tags {
		tag := &a.container.Tags[i]
		if tag.Paused {
			continue
		}
		for _, triggerID := range tag.FiringTriggerIDs {
			triggerTags[triggerID] = append(triggerTags[triggerID], tag)
		}
	}

	for i := range a.container.Triggers {
		trigger := &a.container.Triggers[i]
		attached := triggerTags[trigger.ID]
		if len(attached) == 0 {
			continue
		}
		result.TriggersAnalyzed++

		direct := refs.SortedNames(refs.Scan(trigger.Raw))
		detail := TriggerDetail{
			Name:            trigger.Name,
			Type:            a.names.TriggerType(trigger.Type),
			DirectVariables: direct,
			AllVariables:    a.expand(direct),
			AttachedTags:    []AttachedTag{},
		}

		for _, tag := range attached {
			tagType := a.names.TagType(tag.Type)
			detail.AttachedTags = append(detail.AttachedTags, AttachedTag{
				Name: tag.Name,
				Type: tagType,
			})
			result.TagTypeBreakdown[tagType]++
		}

		for name, count := range detail.AllVariables {
			result.TotalEvaluations += count
			result.EvaluationsByVariable[name] += count
			result.EvaluationsByType[a.names.VariableKindForName(name, a.container)] += count
		}

		result.TriggerDetails = append(result.TriggerDetails, detail)
	}

	if a.logger != nil {
		a.logger.Debug("trigger impact analysis completed",
			"triggersAnalyzed", result.TriggersAnalyzed,
			"totalEvaluations", result.TotalEvaluations)
	}

	return result
}

// AnalyzeTagImpact estimates variable evaluations caused by tag firing.
// Tag-level transformations and the template source of cvt_* tags fold
// into the direct reference set before transitive expansion.
func (a *Analyzer) AnalyzeTagImpact() *TagImpact {
	result := &TagImpact{
		EvaluationsByType:     make(map[string]int),
		EvaluationsByVariable: make(map[string]int),
		TagTypeStatistics:     make(map[string]*TagTypeStats),
		TagDetails:            []TagDetail{},
	}

	for i := range a.container.Tags {
		tag := &a.container.Tags[i]
		if tag.Paused {
			continue
		}
		result.TagsAnalyzed++

		tagType := a.names.TagType(tag.Type)
		stats := result.TagTypeStatistics[tagType]
		if stats == nil {
			stats = &TagTypeStats{VariablesUsed: []string{}}
			result.TagTypeStatistics[tagType] = stats
		}
		stats.Count++

		directSet := refs.Scan(tag.Raw)
		detail := TagDetail{
			Name:            tag.Name,
			Type:            tagType,
			Transformations: []TransformationRef{},
		}

		if strings.HasPrefix(tag.Type, "cvt_") {
			result.CustomTemplatesProcessed++
			if meta, templateRefs := a.templateSource(tag.Type); meta != nil {
				detail.CustomTemplateInfo = meta
				for name := range templateRefs {
					directSet[name] = struct{}{}
				}
			}
		}

		for _, trans := range tag.Transformations {
			result.TransformationsProcessed++
			transSet := refs.Scan(trans)
			transType, _ := trans["type"].(string)
			if transType == "" {
				transType = "Unknown"
			}
			detail.Transformations = append(detail.Transformations, TransformationRef{
				Type:      transType,
				Variables: refs.SortedNames(transSet),
			})
			for name := range transSet {
				directSet[name] = struct{}{}
			}
		}

		detail.DirectVariables = refs.SortedNames(directSet)
		detail.AllVariables = a.expand(detail.DirectVariables)

		seen := make(map[string]struct{})
		for name, count := range detail.AllVariables {
			result.TotalEvaluations += count
			result.EvaluationsByVariable[name] += count
			result.EvaluationsByType[a.names.VariableKindForName(name, a.container)] += count

			stats.TotalEvaluations += count
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				stats.VariablesUsed = append(stats.VariablesUsed, name)
			}
		}

		result.TagDetails = append(result.TagDetails, detail)
	}

	for _, stats := range result.TagTypeStatistics {
		uniq := make(map[string]struct{}, len(stats.VariablesUsed))
		for _, name := range stats.VariablesUsed {
			uniq[name] = struct{}{}
		}
		stats.VariablesUsed = stats.VariablesUsed[:0]
		for name := range uniq {
			stats.VariablesUsed = append(stats.VariablesUsed, name)
		}
		sort.Strings(stats.VariablesUsed)
		stats.UniqueVariables = len(stats.VariablesUsed)
	}

	if a.logger != nil {
		a.logger.Debug("tag impact analysis completed",
			"tagsAnalyzed", result.TagsAnalyzed,
			"totalEvaluations", result.TotalEvaluations,
			"transformations", result.TransformationsProcessed,
			"customTemplates", result.CustomTemplatesProcessed)
	}

	return result
}

// expand turns a direct reference list into the full evaluation multiset:
// one evaluation per direct reference plus the transitive expansion of each.
func (a *Analyzer) expand(direct []string) map[string]int {
	all := make(map[string]int, len(direct))
	for _, name := range direct {
		all[name]++
		for nested, count := range a.resolver.Resolve(name) {
			all[nested] += count
		}
	}
	return all
}

// templateSource locates the template definition behind a cvt_* type id and
// returns its metadata together with the references embedded in its source
// text.
func (a *Analyzer) templateSource(typeID string) (*TemplateMeta, map[string]struct{}) {
	parts := strings.Split(typeID, "_")
	templateID := parts[len(parts)-1]
	for i := range a.container.CustomTemplates {
		t := &a.container.CustomTemplates[i]
		if t.TemplateID == templateID {
			return &TemplateMeta{
				Name:       t.Name,
				TemplateID: templateID,
			}, refs.ScanString(t.TemplateData)
		}
	}
	return nil, nil
}
