package canvas

// Input is one named slot on a component that expects a value. Inputs keep
// their declared order; the mapping engine respects that order when it
// scans for a slot to fill.
type Input struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Component is one node in a page's component forest. Children are owned
// by value, so a page tree can be deep-copied without chasing pointers.
type Component struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`   // component type identifier, e.g. "hero", "text"
	Region   string      `json:"region,omitempty"` // placement region within the parent
	Inputs   []Input     `json:"inputs,omitempty"`
	Children []Component `json:"children,omitempty"`
}

// HasInput reports whether the component declares an input with this name.
func (c Component) HasInput(name string) bool {
	for _, in := range c.Inputs {
		if in.Name == name {
			return true
		}
	}
	return false
}

// InputValue returns the value of the named input, or "" when the input is
// not declared.
func (c Component) InputValue(name string) string {
	for _, in := range c.Inputs {
		if in.Name == name {
			return in.Value
		}
	}
	return ""
}

// WithInput returns a copy of the component with the named input set.
// Undeclared names are ignored: templates own their slot surface, filling
// never invents new inputs.
func (c Component) WithInput(name, value string) Component {
	out := c.Clone()
	for i := range out.Inputs {
		if out.Inputs[i].Name == name {
			out.Inputs[i].Value = value
			break
		}
	}
	return out
}

// Clone deep-copies the component and its subtree.
func (c Component) Clone() Component {
	out := c
	if c.Inputs != nil {
		out.Inputs = make([]Input, len(c.Inputs))
		copy(out.Inputs, c.Inputs)
	}
	if c.Children != nil {
		out.Children = make([]Component, len(c.Children))
		for i, child := range c.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// CloneTree deep-copies a component forest.
func CloneTree(components []Component) []Component {
	if components == nil {
		return nil
	}
	out := make([]Component, len(components))
	for i, c := range components {
		out[i] = c.Clone()
	}
	return out
}
