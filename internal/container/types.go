package container

// Container holds the decoded component collections of a GTM container
// export. Collections are never nil; a missing or malformed top-level key
// decodes to an empty slice. The container is read-only once decoded.
type Container struct {
	Variables       []Variable
	Tags            []Tag
	Triggers        []Trigger
	Transformations []Transformation
	Clients         []Client
	CustomTemplates []CustomTemplate
	Folders         []Folder
	BuiltIns        []BuiltInVariable
}

// IsServerSide reports whether the container is a server-side container.
// Server containers are the only ones carrying transformations or clients.
func (c *Container) IsServerSide() bool {
	return len(c.Transformations) > 0 || len(c.Clients) > 0
}

// PausedTagCount returns the number of paused tags.
func (c *Container) PausedTagCount() int {
	n := 0
	for _, t := range c.Tags {
		if t.Paused {
			n++
		}
	}
	return n
}

// VariableByName returns the variable with the given name, or nil.
// Names are the join key for references and are matched case-sensitively.
func (c *Container) VariableByName(name string) *Variable {
	for i := range c.Variables {
		if c.Variables[i].Name == name {
			return &c.Variables[i]
		}
	}
	return nil
}

// Parameter is a single key/value entry from a component's parameter list.
// Only parameters whose value is a plain string carry a Value; nested
// list/map parameters are reachable through the component's Raw document.
type Parameter struct {
	Key   string
	Value string
}

// Variable is a named, typed data-extraction definition.
type Variable struct {
	Name        string
	ID          string
	Type        string
	Parameters  []Parameter
	FormatValue map[string]any
	Raw         map[string]any
}

// ParameterMap returns a key -> value lookup over the parameter list.
// Later duplicates of a key win, matching export order.
func (v *Variable) ParameterMap() map[string]string {
	m := make(map[string]string, len(v.Parameters))
	for _, p := range v.Parameters {
		m[p.Key] = p.Value
	}
	return m
}

// Tag is a fire-able container component. Paused tags participate in
// reference scanning only under the include-paused policy.
type Tag struct {
	Name             string
	ID               string
	Type             string
	Paused           bool
	FiringTriggerIDs []string
	// Transformations holds tag-level transformation entries, distinct
	// from the container-level Transformation components.
	Transformations []map[string]any
	Raw             map[string]any
}

// Trigger is a firing condition component.
type Trigger struct {
	Name string
	ID   string
	Type string
	Raw  map[string]any
}

// Transformation is a server-side container-level transformation.
type Transformation struct {
	Name string
	ID   string
	Type string
	Raw  map[string]any
}

// Client is a server-side request client.
type Client struct {
	Name string
	ID   string
	Type string
	Raw  map[string]any
}

// CustomTemplate is a sandboxed template definition. TemplateData is the
// free-text template source; its embedded category (TAG/MACRO/CLIENT) and id
// are only discoverable by pattern search within that text.
type CustomTemplate struct {
	Name              string
	TemplateID        string
	ContainerID       string
	TemplateData      string
	Fingerprint       string
	GalleryTemplateID string
	Raw               map[string]any
}

// StandardTypeID returns the type discriminator that variables, tags and
// clients use to declare consumption of this template.
func (t *CustomTemplate) StandardTypeID() string {
	return "cvt_" + t.ContainerID + "_" + t.TemplateID
}

// Folder is an organizational grouping with no analysis semantics.
type Folder struct {
	Name string
	ID   string
	Raw  map[string]any
}

// BuiltInVariable is a platform-provided variable toggle.
type BuiltInVariable struct {
	Name    string
	Type    string
	Enabled bool
	Raw     map[string]any
}
