package plan

import (
	"reflect"
	"testing"
	"time"
)

func samplePlan() ContentPlan {
	return ContentPlan{
		ID:     "plan-1",
		Title:  "Launch page",
		Status: StatusReady,
		Sections: []Section{
			{
				ID: "s1", Title: "Intro", Content: "Welcome to the launch", Order: 0,
				Children: []Section{
					{ID: "s1a", Title: "Details", Content: "All the details", Order: 1},
					{ID: "s1b", Title: "Summary", Content: "Short recap", Order: 0},
				},
			},
			{ID: "s2", Title: "Pricing", Content: "Three plans available today", Order: 1},
		},
	}
}

func TestStatusCanRefine(t *testing.T) {
	cases := map[Status]bool{
		StatusDraft:     true,
		StatusReady:     true,
		StatusApproved:  true,
		StatusCompleted: false,
		Status("bogus"): false,
	}
	for status, want := range cases {
		if got := status.CanRefine(); got != want {
			t.Errorf("%s.CanRefine() = %v, want %v", status, got, want)
		}
	}
}

func TestTotalCounts(t *testing.T) {
	p := samplePlan()

	if got := p.TotalSectionCount(); got != 4 {
		t.Errorf("TotalSectionCount = %d, want 4", got)
	}
	// 4 + 3 + 2 + 4 words across the tree
	if got := p.TotalWordCount(); got != 13 {
		t.Errorf("TotalWordCount = %d, want 13", got)
	}
}

func TestWithTitleDoesNotMutateOriginal(t *testing.T) {
	p := samplePlan()
	q := p.WithTitle("Renamed")

	if p.Title != "Launch page" {
		t.Errorf("original title mutated to %q", p.Title)
	}
	if q.Title != "Renamed" {
		t.Errorf("copy title = %q, want Renamed", q.Title)
	}

	// Deep copy: editing the copy's sections must not leak back.
	q.Sections[0].Children[0].Content = "changed"
	if p.Sections[0].Children[0].Content != "All the details" {
		t.Error("child section shared between copies")
	}
}

func TestWithRefinementAppends(t *testing.T) {
	p := samplePlan()
	entry := RefinementEntry{ID: "r1", Instructions: "shorter intro", CreatedAt: time.Now()}

	q := p.WithRefinement(entry)
	if len(p.RefinementHistory) != 0 {
		t.Error("original history mutated")
	}
	if len(q.RefinementHistory) != 1 || q.RefinementHistory[0].ID != "r1" {
		t.Errorf("copy history = %+v", q.RefinementHistory)
	}
}

func TestCanRefineCap(t *testing.T) {
	p := samplePlan()
	for i := 0; i < 5; i++ {
		p = p.WithRefinement(RefinementEntry{ID: string(rune('a' + i))})
	}

	if p.CanRefine(5) {
		t.Error("CanRefine should be false at the iteration cap")
	}
	if !p.CanRefine(6) {
		t.Error("CanRefine should be true under a larger cap")
	}
	if p.WithStatus(StatusCompleted).CanRefine(10) {
		t.Error("completed plan must not be refinable regardless of cap")
	}
}

func TestFlattenOrdering(t *testing.T) {
	p := samplePlan()

	flat := Flatten(p.Sections)
	ids := make([]string, len(flat))
	for i, s := range flat {
		ids[i] = s.ID
	}

	// Parent first, then its children by ascending Order, then next sibling.
	want := []string{"s1", "s1b", "s1a", "s2"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("flatten order = %v, want %v", ids, want)
	}

	// Stability: flattening twice yields identical output.
	again := Flatten(p.Sections)
	if !reflect.DeepEqual(flat, again) {
		t.Error("flatten is not stable across calls")
	}

	// Flattened nodes are leaf-bearing: no children carried along.
	for _, s := range flat {
		if s.Children != nil {
			t.Errorf("flattened section %s still has children", s.ID)
		}
	}
}

func TestCombineContexts(t *testing.T) {
	contexts := []AIContext{
		{ID: "c1", Label: "Tone", Content: "friendly", Priority: 1, Enabled: true},
		{ID: "c2", Label: "Audience", Content: "developers", Priority: 10, Enabled: true},
		{ID: "c3", Label: "Ignored", Content: "off", Priority: 99, Enabled: false},
	}

	got := CombineContexts(contexts)
	want := "Audience:\ndevelopers\n\nTone:\nfriendly"
	if got != want {
		t.Errorf("CombineContexts = %q, want %q", got, want)
	}

	if CombineContexts(nil) != "" {
		t.Error("no contexts should combine to empty string")
	}
}

func TestNewComponentMappingRejectsUnknownSection(t *testing.T) {
	p := samplePlan()

	if _, err := NewComponentMapping(p, "m1", "nope", "text", nil); err == nil {
		t.Fatal("expected error for unknown section id")
	}

	m, err := NewComponentMapping(p, "m1", "s1a", "text", map[string]string{"body": "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.FieldMappings["body"] != "x" {
		t.Errorf("field mappings not carried: %+v", m.FieldMappings)
	}
}

func TestBuildForest(t *testing.T) {
	root := ComponentMapping{ID: "m1", SectionID: "s1", Weight: 2}
	root2 := ComponentMapping{ID: "m2", SectionID: "s2", Weight: 1}
	child := ComponentMapping{ID: "m3", SectionID: "s1a", Weight: 0}
	child = child.WithParent("m1", "content")

	forest := BuildForest([]ComponentMapping{root, root2, child})

	if len(forest.Roots) != 2 || forest.Roots[0].ID != "m2" {
		t.Errorf("roots not ordered by weight: %+v", forest.Roots)
	}
	got := forest.ChildrenIn("m1", "content")
	if len(got) != 1 || got[0].ID != "m3" {
		t.Errorf("ChildrenIn = %+v", got)
	}
	if len(forest.ChildrenIn("m1", "sidebar")) != 0 {
		t.Error("unexpected children in empty region")
	}
}
