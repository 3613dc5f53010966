package usage

import (
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/blake2b"

	"gtmaudit/internal/container"
)

// Template categories parsed from templateData. A template whose source
// yields no recognizable category is CategoryUnknown and can never match a
// consumer, so it reports as unused by default.
const (
	TemplateCategoryTag     = "TAG"
	TemplateCategoryMacro   = "MACRO"
	TemplateCategoryClient  = "CLIENT"
	TemplateCategoryUnknown = "UNKNOWN"
)

var (
	templateCategoryPattern = regexp.MustCompile(`"type"\s*:\s*"(TAG|MACRO|CLIENT)"`)
	templateDataIDPattern   = regexp.MustCompile(`"id"\s*:\s*"([^"]+)"`)
)

// UnusedTemplate identifies a custom template with no category-matched
// consumer under any of its known type ids.
type UnusedTemplate struct {
	Name        string `json:"name"`
	TemplateID  string `json:"templateId"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	IsGallery   bool   `json:"is_gallery"`
	GalleryID   string `json:"gallery_id"`
	Fingerprint string `json:"fingerprint"`
}

// VariableRef, TagRef and ClientRef identify template consumers.
type VariableRef struct {
	Name       string `json:"name"`
	VariableID string `json:"variableId"`
}

type TagRef struct {
	Name   string `json:"name"`
	TagID  string `json:"tagId"`
	Paused bool   `json:"paused"`
}

type ClientRef struct {
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
}

// TemplateUsage is the per-template consumption detail, keyed in the report
// by the template's standard type id.
type TemplateUsage struct {
	Name            string        `json:"name"`
	TemplateID      string        `json:"templateId"`
	ContainerID     string        `json:"containerId"`
	Category        string        `json:"category"`
	IsGallery       bool          `json:"is_gallery"`
	GalleryID       string        `json:"gallery_id,omitempty"`
	StandardID      string        `json:"standard_id"`
	UsedByVariables []VariableRef `json:"used_by_variables"`
	UsedByTags      []TagRef      `json:"used_by_tags"`
	UsedByClients   []ClientRef   `json:"used_by_clients"`
	TotalUsage      int           `json:"total_usage"`
}

// templateEntry is the canonical record for one template, keyed by
// fingerprint. Alias type ids map onto this single identity rather than
// sharing a mutable record under several keys.
type templateEntry struct {
	tmpl     *container.CustomTemplate
	category string
	// fingerprint is the export's fingerprint when present, otherwise a
	// content hash, so fingerprint-less templates keep distinct identities.
	fingerprint string
}

// templateIndex resolves any of a template's type ids (standard form,
// gallery alias, templateData-embedded id) to its canonical entry.
type templateIndex struct {
	// order holds canonical fingerprints in container order, first
	// occurrence wins for duplicates.
	order   []string
	byPrint map[string]*templateEntry
	aliases map[string]string // type id -> fingerprint
}

func newTemplateIndex(templates []container.CustomTemplate) *templateIndex {
	ix := &templateIndex{
		byPrint: make(map[string]*templateEntry, len(templates)),
		aliases: make(map[string]string),
	}

	for i := range templates {
		t := &templates[i]
		entry := &templateEntry{
			tmpl:        t,
			category:    ParseTemplateCategory(t.TemplateData),
			fingerprint: templateFingerprint(t),
		}
		if _, exists := ix.byPrint[entry.fingerprint]; !exists {
			ix.byPrint[entry.fingerprint] = entry
			ix.order = append(ix.order, entry.fingerprint)
		}

		ix.addAlias(t.StandardTypeID(), entry.fingerprint)
		if t.GalleryTemplateID != "" {
			ix.addAlias("cvt_"+t.GalleryTemplateID, entry.fingerprint)
		}
		if id := parseTemplateDataID(t.TemplateData); id != "" {
			ix.addAlias(id, entry.fingerprint)
		}
	}

	return ix
}

func (ix *templateIndex) addAlias(typeID, fingerprint string) {
	if typeID == "" {
		return
	}
	if _, taken := ix.aliases[typeID]; !taken {
		ix.aliases[typeID] = fingerprint
	}
}

func (ix *templateIndex) resolve(typeID string) *templateEntry {
	fingerprint, ok := ix.aliases[typeID]
	if !ok {
		return nil
	}
	return ix.byPrint[fingerprint]
}

// ParseTemplateCategory extracts the TAG/MACRO/CLIENT marker from template
// source text, degrading to UNKNOWN when none is discoverable.
func ParseTemplateCategory(templateData string) string {
	if m := templateCategoryPattern.FindStringSubmatch(templateData); m != nil {
		return m[1]
	}
	return TemplateCategoryUnknown
}

func parseTemplateDataID(templateData string) string {
	if m := templateDataIDPattern.FindStringSubmatch(templateData); m != nil {
		return m[1]
	}
	return ""
}

func templateFingerprint(t *container.CustomTemplate) string {
	if t.Fingerprint != "" {
		return t.Fingerprint
	}
	sum := blake2b.Sum256([]byte(t.StandardTypeID() + "\x00" + t.TemplateData))
	return hex.EncodeToString(sum[:])
}

// UnusedTemplates returns templates with no consumer whose declared type
// matches one of the template's ids AND whose component kind matches the
// template's structural category (MACRO templates are consumed by variables,
// TAG templates by tags, CLIENT templates by clients). Templates tracked
// under multiple alias ids report once.
func (ix *Indexer) UnusedTemplates() []UnusedTemplate {
	c := ix.container
	tindex := newTemplateIndex(c.CustomTemplates)

	used := make(map[string]bool, len(tindex.byPrint))

	for i := range c.Variables {
		if entry := tindex.resolve(c.Variables[i].Type); entry != nil && entry.category == TemplateCategoryMacro {
			used[entry.fingerprint] = true
		}
	}
	for i := range c.Tags {
		if entry := tindex.resolve(c.Tags[i].Type); entry != nil && entry.category == TemplateCategoryTag {
			used[entry.fingerprint] = true
		}
	}
	for i := range c.Clients {
		if entry := tindex.resolve(c.Clients[i].Type); entry != nil && entry.category == TemplateCategoryClient {
			used[entry.fingerprint] = true
		}
	}

	unused := make([]UnusedTemplate, 0)
	for _, fingerprint := range tindex.order {
		if used[fingerprint] {
			continue
		}
		entry := tindex.byPrint[fingerprint]
		t := entry.tmpl
		unused = append(unused, UnusedTemplate{
			Name:        displayName(t.Name, "template"),
			TemplateID:  t.TemplateID,
			Type:        t.StandardTypeID(),
			Category:    entry.category,
			IsGallery:   t.GalleryTemplateID != "",
			GalleryID:   t.GalleryTemplateID,
			Fingerprint: entry.fingerprint,
		})
	}
	return unused
}

// TemplateUsageDetails returns per-template consumption keyed by standard
// type id. Consumption here matches on declared type alone, without the
// category gate used for unused detection: a tag declaring a MACRO
// template's id is still a consumer worth listing.
func (ix *Indexer) TemplateUsageDetails() map[string]*TemplateUsage {
	c := ix.container
	tindex := newTemplateIndex(c.CustomTemplates)

	details := make(map[string]*TemplateUsage, len(tindex.byPrint))
	byPrint := make(map[string]*TemplateUsage, len(tindex.byPrint))
	for _, fingerprint := range tindex.order {
		entry := tindex.byPrint[fingerprint]
		t := entry.tmpl
		d := &TemplateUsage{
			Name:            displayName(t.Name, "template"),
			TemplateID:      t.TemplateID,
			ContainerID:     t.ContainerID,
			Category:        entry.category,
			IsGallery:       t.GalleryTemplateID != "",
			GalleryID:       t.GalleryTemplateID,
			StandardID:      t.StandardTypeID(),
			UsedByVariables: []VariableRef{},
			UsedByTags:      []TagRef{},
			UsedByClients:   []ClientRef{},
		}
		details[d.StandardID] = d
		byPrint[fingerprint] = d
	}

	for i := range c.Variables {
		v := &c.Variables[i]
		if entry := tindex.resolve(v.Type); entry != nil {
			d := byPrint[entry.fingerprint]
			d.UsedByVariables = append(d.UsedByVariables, VariableRef{Name: v.Name, VariableID: v.ID})
			d.TotalUsage++
		}
	}
	for i := range c.Tags {
		t := &c.Tags[i]
		if entry := tindex.resolve(t.Type); entry != nil {
			d := byPrint[entry.fingerprint]
			d.UsedByTags = append(d.UsedByTags, TagRef{Name: t.Name, TagID: t.ID, Paused: t.Paused})
			d.TotalUsage++
		}
	}
	for i := range c.Clients {
		cl := &c.Clients[i]
		if entry := tindex.resolve(cl.Type); entry != nil {
			d := byPrint[entry.fingerprint]
			d.UsedByClients = append(d.UsedByClients, ClientRef{Name: cl.Name, ClientID: cl.ID})
			d.TotalUsage++
		}
	}

	return details
}
