package plan

import (
	"fmt"
	"sort"
)

// ComponentMapping is an immutable edge between one plan section and one
// destination component slot on a page. A set of mappings with a nil
// ParentMappingID forms the forest roots; children group by Region under
// their parent for nested component placement.
type ComponentMapping struct {
	ID                string            `json:"id"`
	SectionID         string            `json:"section_id"`
	ComponentType     string            `json:"component_type"`
	ComponentBundle   string            `json:"component_bundle,omitempty"`
	FieldMappings     map[string]string `json:"field_mappings"` // destination input name -> value
	ComponentSettings map[string]string `json:"component_settings,omitempty"`
	Weight            int               `json:"weight"` // render/processing order
	ParentMappingID   *string           `json:"parent_mapping_id,omitempty"`
	Region            string            `json:"region,omitempty"`
}

// NewComponentMapping builds a mapping after checking the section exists in
// the plan. A dangling section id is a programming error on the caller's
// side, caught here at construction rather than tolerated downstream.
func NewComponentMapping(p ContentPlan, id, sectionID, componentType string, fields map[string]string) (ComponentMapping, error) {
	if !p.HasSection(sectionID) {
		return ComponentMapping{}, fmt.Errorf("mapping %s references unknown section %s", id, sectionID)
	}
	fm := make(map[string]string, len(fields))
	for k, v := range fields {
		fm[k] = v
	}
	return ComponentMapping{
		ID:            id,
		SectionID:     sectionID,
		ComponentType: componentType,
		FieldMappings: fm,
	}, nil
}

// WithWeight returns a copy of the mapping at the given weight.
func (m ComponentMapping) WithWeight(weight int) ComponentMapping {
	c := m.clone()
	c.Weight = weight
	return c
}

// WithParent returns a copy of the mapping nested under parentID in the
// given region.
func (m ComponentMapping) WithParent(parentID, region string) ComponentMapping {
	c := m.clone()
	c.ParentMappingID = &parentID
	c.Region = region
	return c
}

func (m ComponentMapping) clone() ComponentMapping {
	c := m
	if m.FieldMappings != nil {
		c.FieldMappings = make(map[string]string, len(m.FieldMappings))
		for k, v := range m.FieldMappings {
			c.FieldMappings[k] = v
		}
	}
	if m.ComponentSettings != nil {
		c.ComponentSettings = make(map[string]string, len(m.ComponentSettings))
		for k, v := range m.ComponentSettings {
			c.ComponentSettings[k] = v
		}
	}
	if m.ParentMappingID != nil {
		parent := *m.ParentMappingID
		c.ParentMappingID = &parent
	}
	return c
}

// MappingForest groups a flat mapping set into roots and children-by-parent,
// each level ordered by ascending weight.
type MappingForest struct {
	Roots    []ComponentMapping
	Children map[string][]ComponentMapping // parent mapping id -> children, all regions
}

// BuildForest organizes mappings into a forest. Ordering within each level
// follows Weight ascending, ties keeping input order.
func BuildForest(mappings []ComponentMapping) MappingForest {
	forest := MappingForest{Children: make(map[string][]ComponentMapping)}
	for _, m := range mappings {
		if m.ParentMappingID == nil {
			forest.Roots = append(forest.Roots, m)
			continue
		}
		forest.Children[*m.ParentMappingID] = append(forest.Children[*m.ParentMappingID], m)
	}
	byWeight := func(list []ComponentMapping) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Weight < list[j].Weight })
	}
	byWeight(forest.Roots)
	for _, children := range forest.Children {
		byWeight(children)
	}
	return forest
}

// ChildrenIn returns the children of parentID placed in the given region,
// in weight order.
func (f MappingForest) ChildrenIn(parentID, region string) []ComponentMapping {
	var out []ComponentMapping
	for _, m := range f.Children[parentID] {
		if m.Region == region {
			out = append(out, m)
		}
	}
	return out
}
