// Package duplicates classifies variables into duplicate groups: variables
// of the same declared type extracting the same data source under a
// type-specific semantic key. Singleton keys are dropped silently.
package duplicates

import (
	"sort"
	"strings"

	"gtmaudit/internal/container"
)

// templateKeyParams is the fixed candidate set of parameters that identify
// what a custom-template variable extracts.
var templateKeyParams = []string{"queryParamName", "pageLocation", "keyPath", "name", "key"}

// collector accumulates entries per semantic key, preserving first-seen key
// order so group output is deterministic.
type collector struct {
	order  []string
	groups map[string][]Entry
}

func newCollector() *collector {
	return &collector{groups: make(map[string][]Entry)}
}

func (c *collector) add(key string, e Entry) {
	if _, seen := c.groups[key]; !seen {
		c.order = append(c.order, key)
	}
	c.groups[key] = append(c.groups[key], e)
}

func (c *collector) duplicates() []Group {
	out := make([]Group, 0)
	for _, key := range c.order {
		if entries := c.groups[key]; len(entries) > 1 {
			out = append(out, entries)
		}
	}
	return out
}

// Find groups the container's variables into duplicate buckets.
func Find(variables []container.Variable) *Result {
	dataLayer := newCollector()
	eventData := newCollector()
	cookie := newCollector()
	jsVariable := newCollector()
	url := newCollector()
	customTemplate := newCollector()

	for i := range variables {
		v := &variables[i]
		params := v.ParameterMap()
		format := SummarizeFormatValue(v.FormatValue)

		base := Entry{
			Name:       v.Name,
			VariableID: v.ID,
			Type:       v.Type,
			FormatValue: format,
		}

		switch {
		case v.Type == "v":
			name, ok := params["name"]
			if !ok {
				continue
			}
			version := params["dataLayerVersion"]
			if version == "" {
				version = "2"
			}
			e := base
			e.Path = name
			e.Version = version
			e.DefaultValue = params["defaultValue"]
			dataLayer.add("datalayer|"+name+"|v"+version, e)

		case v.Type == "ed":
			keyPath, ok := params["keyPath"]
			if !ok {
				continue
			}
			e := base
			e.KeyPath = keyPath
			e.DefaultValue = params["defaultValue"]
			eventData.add("eventdata|"+keyPath, e)

		case v.Type == "k":
			name, ok := params["name"]
			if !ok {
				continue
			}
			e := base
			e.CookieName = name
			cookie.add("cookie|"+name, e)

		case v.Type == "j":
			name, ok := params["name"]
			if !ok {
				continue
			}
			e := base
			e.JSVarName = name
			jsVariable.add("jsvar|"+name, e)

		case v.Type == "u":
			component := params["component"]
			if component == "" {
				component = "UNSPECIFIED"
			}
			// Refine by the extracted query parameter or custom source
			// so a gclid extractor and an fbclid extractor do not land
			// in the same group.
			queryKey := params["queryKey"]
			customSource := params["customUrlSource"]
			key := "url|" + component
			switch {
			case queryKey != "":
				key += "|" + queryKey
			case customSource != "":
				key += "|" + customSource
			}
			e := base
			e.Component = component
			e.QueryKey = queryKey
			url.add(key, e)

		case strings.HasPrefix(v.Type, "cvt_"):
			keyParts := make([]string, 0, len(templateKeyParams))
			for _, param := range templateKeyParams {
				if value, ok := params[param]; ok {
					keyParts = append(keyParts, param+":"+value)
				}
			}
			if len(keyParts) == 0 {
				continue
			}
			sort.Strings(keyParts)
			e := base
			e.Parameters = params
			customTemplate.add("custom|"+v.Type+"|"+strings.Join(keyParts, "|"), e)
		}
	}

	return &Result{
		DataLayer:      dataLayer.duplicates(),
		EventData:      eventData.duplicates(),
		Cookie:         cookie.duplicates(),
		JSVariable:     jsVariable.duplicates(),
		URL:            url.duplicates(),
		CustomTemplate: customTemplate.duplicates(),
		Other:          []Group{},
	}
}
