package level

import (
	"testing"

	"github.com/milk9111/adofai/levels"
	"github.com/milk9111/adofai/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExpr(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want []int
	}{
		{"type", `event.eventType == "Twirl"`, []int{1, 3}},
		{"floor", `event.floor > 2`, []int{3, 5}},
		{"fraction", `event.bpmMultiplier == 0.5`, []int{5}},
		{"missing_field", `event.nope == "x"`, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := loadFixture(t, levels.Basic)
			f, err := FilterExpr(c.expr)
			require.NoError(t, err)

			got := lvl.Actions(f.Predicate())
			assert.Equal(t, c.want, nilIfEmpty(floorsOf(got)))
			require.NoError(t, f.Err())
		})
	}
}

func TestFilterDecorations(t *testing.T) {
	lvl := loadFixture(t, levels.Basic)
	f, err := FilterExpr(`event.tag == "title"`)
	require.NoError(t, err)

	removed := lvl.RemoveDecorations(f.Predicate())
	require.Len(t, removed, 1)
	assert.Empty(t, lvl.GlobalDecorations())
}

func TestPresetScripts(t *testing.T) {
	cases := []struct {
		script string
		want   []int
	}{
		{"twirls", []int{1, 3}},
		{"speed_changes", []int{2, 5}},
	}

	for _, c := range cases {
		t.Run(c.script, func(t *testing.T) {
			src, err := presets.LoadScript(c.script)
			require.NoError(t, err)
			f, err := CompileFilter(string(src))
			require.NoError(t, err)

			lvl := loadFixture(t, levels.Basic)
			assert.Equal(t, c.want, floorsOf(lvl.Actions(f.Predicate())))
			require.NoError(t, f.Err())
		})
	}
}

func TestFilterErrors(t *testing.T) {
	_, err := FilterExpr("event.")
	require.Error(t, err)

	lvl := loadFixture(t, levels.Basic)

	f, err := FilterExpr(`event.floor / 0 == 1`)
	require.NoError(t, err)
	assert.Empty(t, lvl.Actions(f.Predicate()))
	require.ErrorContains(t, f.Err(), "divide by zero")
	assert.False(t, f.Match(Event{"floor": 1}))

	assert.Empty(t, lvl.RemoveActions(f.Predicate()))
	assert.Len(t, lvl.Actions(nil), 4)

	f, err = CompileFilter(`x := 1`)
	require.NoError(t, err)
	assert.False(t, f.Match(Event{"floor": 1}))
	require.ErrorContains(t, f.Err(), "match")
}

func nilIfEmpty(s []int) []int {
	if len(s) == 0 {
		return nil
	}
	return s
}
