package typenames

import (
	"sort"

	"gtmaudit/internal/container"
)

// UnknownTypes lists type discriminators seen during an analysis run that
// the display-name tables do not cover, per category. These flag gaps in
// the translation tables, not analysis errors.
type UnknownTypes struct {
	TagTypes      []string `json:"tag_types"`
	VariableTypes []string `json:"variable_types"`
	TriggerTypes  []string `json:"trigger_types"`
	ClientTypes   []string `json:"client_types"`
	BuiltInTypes  []string `json:"builtin_types"`
}

// Tracker routes display-name lookups and accumulates the unknowns it sees.
// It is the explicit replacement for cross-call mutable lookup state: the
// caller owns the tracker and decides when to fold its report into a result.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	overrides *Overrides

	unknownTags      map[string]struct{}
	unknownVariables map[string]struct{}
	unknownTriggers  map[string]struct{}
	unknownClients   map[string]struct{}
	unknownBuiltIns  map[string]struct{}
}

// NewTracker returns a tracker with no overrides.
func NewTracker() *Tracker {
	return NewTrackerWithOverrides(nil)
}

// NewTrackerWithOverrides returns a tracker that consults the given override
// tables before the built-in ones. A nil overrides is valid.
func NewTrackerWithOverrides(ov *Overrides) *Tracker {
	return &Tracker{
		overrides:        ov,
		unknownTags:      make(map[string]struct{}),
		unknownVariables: make(map[string]struct{}),
		unknownTriggers:  make(map[string]struct{}),
		unknownClients:   make(map[string]struct{}),
		unknownBuiltIns:  make(map[string]struct{}),
	}
}

// VariableType returns the display name for a variable type, recording the
// discriminator when no table covers it.
func (t *Tracker) VariableType(varType string) string {
	if name, ok := t.overrides.variable(varType); ok {
		return name
	}
	name, known := VariableTypeName(varType)
	if !known && varType != "" {
		t.unknownVariables[varType] = struct{}{}
	}
	return name
}

// TagType returns the display name for a tag type.
func (t *Tracker) TagType(tagType string) string {
	if name, ok := t.overrides.tag(tagType); ok {
		return name
	}
	name, known := TagTypeName(tagType)
	if !known && tagType != "" {
		t.unknownTags[tagType] = struct{}{}
	}
	return name
}

// TriggerType returns the display name for a trigger type.
func (t *Tracker) TriggerType(triggerType string) string {
	if name, ok := t.overrides.trigger(triggerType); ok {
		return name
	}
	name, known := TriggerTypeName(triggerType)
	if !known && triggerType != "" {
		t.unknownTriggers[triggerType] = struct{}{}
	}
	return name
}

// ClientType returns the display name for a client type.
func (t *Tracker) ClientType(clientType string) string {
	if name, ok := t.overrides.client(clientType); ok {
		return name
	}
	name, known := ClientTypeName(clientType)
	if !known && clientType != "" {
		t.unknownClients[clientType] = struct{}{}
	}
	return name
}

// BuiltInType returns the display name for a built-in variable type.
func (t *Tracker) BuiltInType(builtInType string) string {
	if name, ok := t.overrides.builtIn(builtInType); ok {
		return name
	}
	name, known := BuiltInTypeName(builtInType)
	if !known && builtInType != "" {
		t.unknownBuiltIns[builtInType] = struct{}{}
	}
	return name
}

// VariableKindForName classifies a referenced name: the display name of its
// defining variable's type when one exists, otherwise a GTM-internal or
// built-in classification, otherwise "Unknown". Undefined names never count
// toward the unknown-type report; they may be runtime-only.
func (t *Tracker) VariableKindForName(name string, c *container.Container) string {
	if v := c.VariableByName(name); v != nil {
		return t.VariableType(v.Type)
	}
	if IsInternalName(name) {
		return "GTM Internal Variable"
	}
	if IsBuiltInDisplayName(name) {
		return "Built-in Variable"
	}
	return "Unknown"
}

// Report returns the accumulated unknown discriminators, sorted per category.
func (t *Tracker) Report() UnknownTypes {
	return UnknownTypes{
		TagTypes:      sortedKeys(t.unknownTags),
		VariableTypes: sortedKeys(t.unknownVariables),
		TriggerTypes:  sortedKeys(t.unknownTriggers),
		ClientTypes:   sortedKeys(t.unknownClients),
		BuiltInTypes:  sortedKeys(t.unknownBuiltIns),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
