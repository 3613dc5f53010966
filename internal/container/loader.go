// Package container decodes GTM container exports into an in-memory
// document model. Decoding is deliberately permissive: missing collections,
// wrong-typed fields and absent ids degrade to zero values instead of
// failing, since exports vary across container versions and platforms.
// Only invalid top-level JSON is an error.
package container

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load decodes a container export from raw JSON bytes.
func Load(data []byte) (*Container, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid container export: %w", err)
	}
	return Decode(doc), nil
}

// LoadFile reads and decodes a container export file.
func LoadFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container export: %w", err)
	}
	return Load(data)
}

// Decode builds a Container from an already-parsed JSON document.
// The document is the full export; component collections live under the
// top-level "containerVersion" key.
func Decode(doc map[string]any) *Container {
	version, _ := doc["containerVersion"].(map[string]any)

	c := &Container{
		Variables:       make([]Variable, 0),
		Tags:            make([]Tag, 0),
		Triggers:        make([]Trigger, 0),
		Transformations: make([]Transformation, 0),
		Clients:         make([]Client, 0),
		CustomTemplates: make([]CustomTemplate, 0),
		Folders:         make([]Folder, 0),
		BuiltIns:        make([]BuiltInVariable, 0),
	}

	for _, raw := range objectList(version, "variable") {
		c.Variables = append(c.Variables, decodeVariable(raw))
	}
	for _, raw := range objectList(version, "tag") {
		c.Tags = append(c.Tags, decodeTag(raw))
	}
	for _, raw := range objectList(version, "trigger") {
		c.Triggers = append(c.Triggers, Trigger{
			Name: stringField(raw, "name"),
			ID:   stringField(raw, "triggerId"),
			Type: stringField(raw, "type"),
			Raw:  raw,
		})
	}
	for _, raw := range objectList(version, "transformation") {
		c.Transformations = append(c.Transformations, Transformation{
			Name: stringField(raw, "name"),
			ID:   stringField(raw, "transformationId"),
			Type: stringField(raw, "type"),
			Raw:  raw,
		})
	}
	for _, raw := range objectList(version, "client") {
		c.Clients = append(c.Clients, Client{
			Name: stringField(raw, "name"),
			ID:   stringField(raw, "clientId"),
			Type: stringField(raw, "type"),
			Raw:  raw,
		})
	}
	for _, raw := range objectList(version, "customTemplate") {
		c.CustomTemplates = append(c.CustomTemplates, decodeTemplate(raw))
	}
	for _, raw := range objectList(version, "folder") {
		c.Folders = append(c.Folders, Folder{
			Name: stringField(raw, "name"),
			ID:   stringField(raw, "folderId"),
			Raw:  raw,
		})
	}
	for _, raw := range objectList(version, "builtInVariable") {
		enabled, _ := raw["enabled"].(bool)
		c.BuiltIns = append(c.BuiltIns, BuiltInVariable{
			Name:    stringField(raw, "name"),
			Type:    stringField(raw, "type"),
			Enabled: enabled,
			Raw:     raw,
		})
	}

	return c
}

func decodeVariable(raw map[string]any) Variable {
	v := Variable{
		Name: stringField(raw, "name"),
		ID:   stringField(raw, "variableId"),
		Type: stringField(raw, "type"),
		Raw:  raw,
	}
	for _, p := range objectList(raw, "parameter") {
		key := stringField(p, "key")
		if key == "" {
			continue
		}
		value, _ := p["value"].(string)
		v.Parameters = append(v.Parameters, Parameter{Key: key, Value: value})
	}
	if fv, ok := raw["formatValue"].(map[string]any); ok {
		v.FormatValue = fv
	}
	return v
}

func decodeTag(raw map[string]any) Tag {
	paused, _ := raw["paused"].(bool)
	t := Tag{
		Name:   stringField(raw, "name"),
		ID:     stringField(raw, "tagId"),
		Type:   stringField(raw, "type"),
		Paused: paused,
		Raw:    raw,
	}
	if ids, ok := raw["firingTriggerId"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok {
				t.FiringTriggerIDs = append(t.FiringTriggerIDs, s)
			}
		}
	}
	// Exports have carried the tag-level transformation list under both
	// singular and plural keys.
	t.Transformations = objectList(raw, "transformation")
	if len(t.Transformations) == 0 {
		t.Transformations = objectList(raw, "transformations")
	}
	return t
}

func decodeTemplate(raw map[string]any) CustomTemplate {
	t := CustomTemplate{
		Name:        stringField(raw, "name"),
		TemplateID:  stringField(raw, "templateId"),
		ContainerID: stringField(raw, "containerId"),
		Fingerprint: stringField(raw, "fingerprint"),
		Raw:         raw,
	}
	if data, ok := raw["templateData"].(string); ok {
		t.TemplateData = data
	}
	if ref, ok := raw["galleryReference"].(map[string]any); ok {
		t.GalleryTemplateID = stringField(ref, "galleryTemplateId")
	}
	return t
}

// objectList extracts a list of JSON objects from doc[key], dropping
// non-object elements. Any shape other than a list yields nil.
func objectList(doc map[string]any, key string) []map[string]any {
	if doc == nil {
		return nil
	}
	items, ok := doc[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func stringField(doc map[string]any, key string) string {
	if doc == nil {
		return ""
	}
	s, _ := doc[key].(string)
	return s
}
