package plan

import (
	"sort"

	"pageforge/internal/utils"
)

// Section is one node in the content plan tree: a heading, its body text,
// a component-type hint for the mapping engine, and ordered children.
// Sections are value types: update methods return a modified copy and never
// mutate the receiver, so a plan can be swapped atomically after an edit.
type Section struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	ComponentType   string            `json:"component_type"` // hint, e.g. "text", "hero"
	Order           int               `json:"order"`          // sibling sequence
	ComponentConfig map[string]string `json:"component_config,omitempty"`
	Children        []Section         `json:"children,omitempty"`
}

// WithContent returns a copy of the section with replaced body text.
func (s Section) WithContent(content string) Section {
	c := s.clone()
	c.Content = content
	return c
}

// WithTitle returns a copy of the section with a replaced title.
func (s Section) WithTitle(title string) Section {
	c := s.clone()
	c.Title = title
	return c
}

// WordCount counts the words in this section's content plus all of its
// descendants, using the shared markup-stripping counter.
func (s Section) WordCount() int {
	total := utils.CountWords(s.Content)
	for _, child := range s.Children {
		total += child.WordCount()
	}
	return total
}

// SectionCount returns this section plus all of its descendants.
func (s Section) SectionCount() int {
	total := 1
	for _, child := range s.Children {
		total += child.SectionCount()
	}
	return total
}

// clone deep-copies the section, including children and config.
func (s Section) clone() Section {
	c := s
	if s.ComponentConfig != nil {
		c.ComponentConfig = make(map[string]string, len(s.ComponentConfig))
		for k, v := range s.ComponentConfig {
			c.ComponentConfig[k] = v
		}
	}
	if s.Children != nil {
		c.Children = make([]Section, len(s.Children))
		for i, child := range s.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}

// sortSiblings orders a sibling slice by ascending Order, recursively.
// Flattening depends on this being deterministic; ties keep input order.
func sortSiblings(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Children = sortSiblings(out[i].Children)
	}
	return out
}

// Flatten performs a depth-first, order-respecting traversal: parent before
// children, siblings by ascending Order. The result is the sequence the
// mapping engine pairs against a template's fillable components.
func Flatten(sections []Section) []Section {
	var out []Section
	for _, s := range sortSiblings(sections) {
		flattenInto(&out, s)
	}
	return out
}

func flattenInto(out *[]Section, s Section) {
	leaf := s
	leaf.Children = nil
	*out = append(*out, leaf)
	for _, child := range s.Children {
		flattenInto(out, child)
	}
}

// CollectIDs returns every section id in the tree, parent-first.
func CollectIDs(sections []Section) []string {
	flat := Flatten(sections)
	ids := make([]string, 0, len(flat))
	for _, s := range flat {
		ids = append(ids, s.ID)
	}
	return ids
}
