package mcp

// RunLayoutInput is the input for the run_layout tool.
type RunLayoutInput struct {
	Name       string `json:"name,omitempty" jsonschema:"Name of a stored layout (built-in or from the layouts directory). Either name or yaml is required."`
	Yaml       string `json:"yaml,omitempty" jsonschema:"Inline layout document in yaml. Either name or yaml is required."`
	Root       string `json:"root,omitempty" jsonschema:"Root working directory override for all panes"`
	NewWindow  bool   `json:"new_window,omitempty" jsonschema:"Open the layout in a new terminal window instead of a new tab"`
	CurrentTab bool   `json:"current_tab,omitempty" jsonschema:"Build the layout in the current tab instead of opening a new one"`
}

// RunLayoutOutput is the output for the run_layout tool.
type RunLayoutOutput struct {
	Layout string `json:"layout"`
	Panes  int    `json:"panes"`
}

// PlanLayoutInput is the input for the plan_layout tool.
type PlanLayoutInput struct {
	Name       string `json:"name,omitempty" jsonschema:"Name of a stored layout. Either name or yaml is required."`
	Yaml       string `json:"yaml,omitempty" jsonschema:"Inline layout document in yaml. Either name or yaml is required."`
	Root       string `json:"root,omitempty" jsonschema:"Root working directory override for all panes"`
	NewWindow  bool   `json:"new_window,omitempty" jsonschema:"Plan as if opening a new terminal window"`
	CurrentTab bool   `json:"current_tab,omitempty" jsonschema:"Plan as if building in the current tab"`
}

// PlanLayoutOutput is the output for the plan_layout tool.
type PlanLayoutOutput struct {
	Layout  string   `json:"layout"`
	Panes   int      `json:"panes"`
	Actions []string `json:"actions"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// LayoutInfo describes one available layout.
type LayoutInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Panes       int    `json:"panes"`
}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts []LayoutInfo `json:"layouts"`
}

// ValidateLayoutInput is the input for the validate_layout tool.
type ValidateLayoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Name of a stored layout to validate. Either name or yaml is required."`
	Yaml string `json:"yaml,omitempty" jsonschema:"Inline layout document in yaml. Either name or yaml is required."`
}

// ValidateLayoutOutput is the output for the validate_layout tool.
type ValidateLayoutOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Panes int    `json:"panes,omitempty"`
}
