package level

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/adofai/lenient"
	"github.com/milk9111/adofai/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	cases := []struct {
		name        string
		file        string
		angles      []float64
		actions     []int
		decorations int
		globals     int
	}{
		{
			name:        "angle_data",
			file:        levels.Basic,
			angles:      []float64{0, 90, 90, 180, 270, 270},
			actions:     []int{1, 2, 3, 5},
			decorations: 3,
			globals:     1,
		},
		{
			name:    "path_data_concatenated",
			file:    levels.Legacy,
			angles:  []float64{0, 0, 90, Midspin, 180, 0, 0},
			actions: []int{1, 4},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := loadFixture(t, c.file)
			if diff := cmp.Diff(c.angles, lvl.Angles()); diff != "" {
				t.Fatalf("angles mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, c.actions, floorsOf(lvl.Actions(nil)))
			assert.Len(t, lvl.Decorations(nil), c.decorations)
			assert.Len(t, lvl.GlobalDecorations(), c.globals)
			assert.Equal(t, "", lvl.Path())
			requireFloorsConsistent(t, lvl)
		})
	}
}

func TestTerminalTileMirrorsPredecessor(t *testing.T) {
	cases := []struct {
		name string
		root map[string]any
		want []float64
	}{
		{"real_last", testRoot([]float64{0, 45, 300}), []float64{0, 45, 300, 300}},
		{"midspin_last", testRoot([]float64{0, 90, Midspin}), []float64{0, 90, Midspin, 270}},
		{"only_midspin", testRoot([]float64{Midspin}), []float64{Midspin, 180}},
		{"empty_path", testRoot([]float64{}), []float64{0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := mustParseRoot(t, c.root)
			got := lvl.Angles()
			assert.Equal(t, c.want, got)

			n := len(got)
			if n >= 2 {
				last, prev := got[n-1], got[n-2]
				if prev == Midspin {
					assert.NotEqual(t, Midspin, last)
				} else {
					assert.Equal(t, prev, last)
				}
			}
		})
	}
}

func TestPathDataMidspinTerminal(t *testing.T) {
	root := testRoot(nil)
	delete(root, "angleData")
	root["pathData"] = "RU!"

	lvl := mustParseRoot(t, root)
	assert.Equal(t, []float64{0, 90, Midspin, 270}, lvl.Angles())
}

func TestDecodePathData(t *testing.T) {
	got, err := DecodePathData("RpJEUL!A")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 15, 30, 45, 90, 180, Midspin, 345}, got)

	_, err = DecodePathData("RRz")
	require.ErrorIs(t, err, ErrSchema)
}

func TestParseSchemaErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(root map[string]any)
		want   error
	}{
		{"missing_settings", func(r map[string]any) { delete(r, "settings") }, ErrSchema},
		{"missing_actions", func(r map[string]any) { delete(r, "actions") }, ErrSchema},
		{"missing_decorations", func(r map[string]any) { delete(r, "decorations") }, ErrSchema},
		{"missing_angles", func(r map[string]any) { delete(r, "angleData") }, ErrSchema},
		{"missing_settings_key", func(r map[string]any) { delete(r["settings"].(map[string]any), "legacySpriteTiles") }, ErrSchema},
		{"settings_not_object", func(r map[string]any) { r["settings"] = []any{} }, ErrSchema},
		{"angle_not_number", func(r map[string]any) { r["angleData"] = []any{0, "up"} }, ErrSchema},
		{"angle_full_turn", func(r map[string]any) { r["angleData"] = []any{0, 360} }, ErrAngle},
		{"angle_negative", func(r map[string]any) { r["angleData"] = []any{-90, 0} }, ErrSchema},
		{"bad_path_char", func(r map[string]any) { delete(r, "angleData"); r["pathData"] = "R?" }, ErrSchema},
		{"action_without_floor", func(r map[string]any) { r["actions"] = []any{map[string]any{"eventType": "Twirl"}} }, ErrSchema},
		{"action_fractional_floor", func(r map[string]any) { r["actions"] = []any{map[string]any{"floor": 1.5}} }, ErrSchema},
		{"action_floor_out_of_range", func(r map[string]any) { r["actions"] = []any{act(9, "Twirl")} }, ErrIndex},
		{"decoration_floor_negative", func(r map[string]any) { r["decorations"] = []any{map[string]any{"floor": -1}} }, ErrIndex},
		{"decoration_not_object", func(r map[string]any) { r["decorations"] = []any{7} }, ErrSchema},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root := testRoot([]float64{0, 90}, act(1, "Twirl"))
			c.mutate(root)
			lvl, err := parseRoot(root)
			require.ErrorIs(t, err, c.want)
			assert.Nil(t, lvl)
		})
	}
}

func TestParseFormatErrors(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		stage lenient.Stage
	}{
		{"unterminated_string", `{"settings": {"artist": "oops}`, lenient.StageRepair},
		{"garbage", `{"settings": ]`, lenient.StageStrictParse},
		{"array_root", `[]`, lenient.StageStrictParse},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.text), DefaultConfig())
			var lerr *lenient.Error
			require.True(t, errors.As(err, &lerr), "expected *lenient.Error, got %v", err)
			assert.Equal(t, c.stage, lerr.Stage)
		})
	}
}

func TestNewTileOwnsSlices(t *testing.T) {
	actions := []*Action{NewAction(act(0, "Twirl"))}
	tile := NewTile(90, actions, nil)
	actions[0] = NewAction(act(0, "Other"))

	require.Len(t, tile.Actions, 1)
	assert.Equal(t, "Twirl", tile.Actions[0].Type())
}

func TestNewActionCopiesFields(t *testing.T) {
	fields := map[string]any{"floor": 1, "nested": map[string]any{"x": 1}}
	a := NewAction(fields)
	fields["floor"] = 5
	fields["nested"].(map[string]any)["x"] = 2

	f, _ := a.Floor()
	assert.Equal(t, 1, f)
	assert.Equal(t, 1, a.Event["nested"].(map[string]any)["x"])
}

func TestTileIndex(t *testing.T) {
	lvl := loadFixture(t, levels.Basic)
	tile, err := lvl.Tile(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tile.Angle)

	_, err = lvl.Tile(lvl.Len())
	require.ErrorIs(t, err, ErrIndex)
	_, err = lvl.Tile(-1)
	require.ErrorIs(t, err, ErrIndex)
}

func TestParseAcceptsMidspinAngleData(t *testing.T) {
	lvl := mustParseRoot(t, testRoot([]float64{0, 359.5, Midspin}))
	assert.Equal(t, []float64{0, 359.5, Midspin, 179.5}, lvl.Angles())
}
