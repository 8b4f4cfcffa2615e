package mapping

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/internal/domain/models/canvas"
	"pageforge/internal/domain/models/plan"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestEngine(t *testing.T) *engine {
	t.Helper()
	return &engine{policy: DefaultPolicy(), logger: testLogger()}
}

func hero(id string) canvas.Component {
	return canvas.Component{ID: id, Type: "hero", Inputs: []canvas.Input{{Name: "title"}, {Name: "image"}}}
}

func textBlock(id string) canvas.Component {
	return canvas.Component{ID: id, Type: "text", Inputs: []canvas.Input{{Name: "body"}}}
}

func TestMapFillsPositionally(t *testing.T) {
	e := newTestEngine(t)

	p := plan.ContentPlan{
		ID: "p1",
		Sections: []plan.Section{
			{ID: "s1", Title: "Intro", Content: "", Order: 0},
			{ID: "s2", Title: "", Content: "Details here", Order: 1},
		},
	}
	components := []canvas.Component{hero("c1"), textBlock("c2"), textBlock("c3")}

	result, err := e.Map(p, components)
	require.NoError(t, err)

	// Component 1: title set, content candidate skipped (empty).
	assert.Equal(t, "Intro", result.Components[0].InputValue("title"))
	// Component 2: body set from the second section, empty title skipped.
	assert.Equal(t, "Details here", result.Components[1].InputValue("body"))
	// Component 3: untouched, keeps its template default.
	assert.Equal(t, "", result.Components[2].InputValue("body"))
	assert.Equal(t, 0, result.Unmapped)
	assert.Equal(t, 2, result.Filled)
}

func TestMapMoreSectionsThanComponents(t *testing.T) {
	e := newTestEngine(t)

	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "A", Content: "a", Order: 0},
		{ID: "s2", Title: "B", Content: "b", Order: 1},
		{ID: "s3", Title: "C", Content: "c", Order: 2},
		{ID: "s4", Title: "D", Content: "d", Order: 3},
	}}
	components := []canvas.Component{textBlock("c1")}

	result, err := e.Map(p, components)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Filled)
	assert.Equal(t, 3, result.Unmapped)
	assert.Equal(t, "a", result.Components[0].InputValue("body"))
}

func TestMapMoreComponentsThanSections(t *testing.T) {
	e := newTestEngine(t)

	defaulted := textBlock("c2")
	defaulted.Inputs[0].Value = "template default"

	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "Only", Content: "one section", Order: 0},
	}}

	result, err := e.Map(p, []canvas.Component{textBlock("c1"), defaulted})
	require.NoError(t, err)

	assert.Equal(t, "one section", result.Components[0].InputValue("body"))
	// Surplus components keep template defaults; never removed or reset.
	assert.Equal(t, "template default", result.Components[1].InputValue("body"))
	assert.Len(t, result.Components, 2)
	assert.Equal(t, 0, result.Unmapped)
}

func TestMapFieldFillPriority(t *testing.T) {
	e := newTestEngine(t)

	c := canvas.Component{ID: "c1", Type: "hero", Inputs: []canvas.Input{
		{Name: "heading", Value: "default heading"},
		{Name: "title"},
	}}
	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "The Title", Content: "", Order: 0},
	}}

	result, err := e.Map(p, []canvas.Component{c})
	require.NoError(t, err)

	// "title" outranks "heading" regardless of declared order.
	assert.Equal(t, "The Title", result.Components[0].InputValue("title"))
	assert.Equal(t, "default heading", result.Components[0].InputValue("heading"))
}

func TestMapSkipsUnfillableComponents(t *testing.T) {
	e := newTestEngine(t)

	spacer := canvas.Component{ID: "spacer", Type: "spacer", Inputs: []canvas.Input{{Name: "height"}}}
	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "A", Content: "body a", Order: 0},
	}}

	result, err := e.Map(p, []canvas.Component{spacer, textBlock("c1")})
	require.NoError(t, err)

	// The spacer has no recognized input: never a fill target, position kept.
	assert.Equal(t, "spacer", result.Components[0].ID)
	assert.Equal(t, "", result.Components[0].InputValue("height"))
	assert.Equal(t, "body a", result.Components[1].InputValue("body"))
}

func TestMapWalksNestedComponents(t *testing.T) {
	e := newTestEngine(t)

	parent := canvas.Component{
		ID: "layout", Type: "two_column",
		Children: []canvas.Component{textBlock("left"), textBlock("right")},
	}
	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "L", Content: "left text", Order: 0},
		{ID: "s2", Title: "R", Content: "right text", Order: 1},
	}}

	result, err := e.Map(p, []canvas.Component{parent})
	require.NoError(t, err)

	assert.Equal(t, "left text", result.Components[0].Children[0].InputValue("body"))
	assert.Equal(t, "right text", result.Components[0].Children[1].InputValue("body"))
}

func TestMapTypeMismatchWarnsButPairs(t *testing.T) {
	e := newTestEngine(t)

	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "A", Content: "text a", ComponentType: "hero", Order: 0},
	}}

	result, err := e.Map(p, []canvas.Component{textBlock("c1")})
	require.NoError(t, err)

	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, "hero", result.Mismatches[0].SectionType)
	assert.Equal(t, "text", result.Mismatches[0].ComponentType)
	// Pairing still proceeded.
	assert.Equal(t, "text a", result.Components[0].InputValue("body"))
}

func TestMapStrictModeBlocksMismatch(t *testing.T) {
	policy := DefaultPolicy()
	policy.MismatchMode = MismatchStrict
	e := &engine{policy: policy, logger: testLogger()}

	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s1", Title: "A", Content: "text a", ComponentType: "hero", Order: 0},
	}}

	_, err := e.Map(p, []canvas.Component{textBlock("c1")})
	assert.Error(t, err)
}

func TestMapEmptyInputsAreNoOps(t *testing.T) {
	e := newTestEngine(t)

	t.Run("no sections", func(t *testing.T) {
		result, err := e.Map(plan.ContentPlan{}, []canvas.Component{textBlock("c1")})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Filled)
		assert.Equal(t, 0, result.Unmapped)
	})

	t.Run("no fillable components", func(t *testing.T) {
		p := plan.ContentPlan{Sections: []plan.Section{{ID: "s1", Title: "A", Content: "a"}}}
		result, err := e.Map(p, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Filled)
		assert.Equal(t, 1, result.Unmapped)
	})
}

func TestMapDeterministic(t *testing.T) {
	e := newTestEngine(t)

	p := plan.ContentPlan{Sections: []plan.Section{
		{ID: "s2", Title: "Second", Content: "two", Order: 1},
		{ID: "s1", Title: "First", Content: "one", Order: 0,
			Children: []plan.Section{{ID: "s1a", Title: "Nested", Content: "nested", Order: 0}}},
	}}
	components := []canvas.Component{hero("c1"), textBlock("c2"), textBlock("c3")}

	first, err := e.Map(p, components)
	require.NoError(t, err)
	second, err := e.Map(p, components)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Sibling order wins over declaration order: s1 (order 0) pairs first.
	assert.Equal(t, "First", first.Components[0].InputValue("title"))
	assert.Equal(t, "nested", first.Components[1].InputValue("body"))
	assert.Equal(t, "two", first.Components[2].InputValue("body"))
}

func TestMapDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t)

	components := []canvas.Component{textBlock("c1")}
	p := plan.ContentPlan{Sections: []plan.Section{{ID: "s1", Title: "A", Content: "filled"}}}

	_, err := e.Map(p, components)
	require.NoError(t, err)

	assert.Equal(t, "", components[0].InputValue("body"), "input forest must stay untouched")
}
