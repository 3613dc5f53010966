package duplicates

// Entry is one variable inside a duplicate group. Only the fields relevant
// to the group's bucket are populated.
type Entry struct {
	Name       string `json:"name"`
	VariableID string `json:"variableId"`
	Type       string `json:"type"`

	Path         string `json:"path,omitempty"`       // data layer: name parameter
	Version      string `json:"version,omitempty"`    // data layer version
	KeyPath      string `json:"keyPath,omitempty"`    // event data
	CookieName   string `json:"cookieName,omitempty"` // cookie
	JSVarName    string `json:"jsVarName,omitempty"`  // js variable
	Component    string `json:"component,omitempty"`  // url
	QueryKey     string `json:"queryKey,omitempty"`   // url query refinement
	DefaultValue string `json:"defaultValue,omitempty"`

	// Parameters carries the full key lookup for custom-template entries.
	Parameters map[string]string `json:"parameters,omitempty"`

	// FormatValue summarizes the variable's conversion options for
	// display. It never influences grouping.
	FormatValue map[string]string `json:"formatValue,omitempty"`
}

// Group is a set of at least two variables sharing one semantic key.
type Group []Entry

// Result holds duplicate groups per bucket. Buckets with no groups stay as
// empty lists, and no group ever has fewer than two members.
type Result struct {
	DataLayer      []Group `json:"data_layer_duplicates"`
	EventData      []Group `json:"event_data_duplicates"`
	Cookie         []Group `json:"cookie_duplicates"`
	JSVariable     []Group `json:"js_variable_duplicates"`
	URL            []Group `json:"url_duplicates"`
	CustomTemplate []Group `json:"custom_template_duplicates"`
	Other          []Group `json:"other_duplicates"`
}

// GroupCount is the number of duplicate groups across all buckets.
func (r *Result) GroupCount() int {
	n := 0
	for _, bucket := range r.buckets() {
		n += len(*bucket)
	}
	return n
}

// VariableCount is the total number of variables inside duplicate groups.
func (r *Result) VariableCount() int {
	n := 0
	for _, bucket := range r.buckets() {
		for _, group := range *bucket {
			n += len(group)
		}
	}
	return n
}

func (r *Result) buckets() []*[]Group {
	return []*[]Group{
		&r.DataLayer, &r.EventData, &r.Cookie, &r.JSVariable,
		&r.URL, &r.CustomTemplate, &r.Other,
	}
}
