package level

import (
	"testing"

	"github.com/milk9111/adofai/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeAnglesMidspin(t *testing.T) {
	cases := []struct {
		name   string
		angles []float64
		want   []float64
	}{
		{"straight_then_midspin", []float64{90, 90, 90, Midspin}, []float64{180, 180, 180}},
		{"midspin_between", []float64{0, 90, Midspin, 180}, []float64{180, 90, 270}},
		{"no_midspin", []float64{0, 90, 180, 90}, []float64{180, 90, 90, 270}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := mustParseRoot(t, testRoot([]float64{0, 0, 0}))
			require.NoError(t, lvl.SetAngles(c.angles))
			assert.Equal(t, c.want, lvl.RelativeAngles(false))
		})
	}
}

func TestRelativeAnglesTwirl(t *testing.T) {
	cases := []struct {
		name         string
		actions      []map[string]any
		ignoreTwirls bool
		want         []float64
	}{
		{"none", nil, false, []float64{180, 90, 90, 270, 180}},
		{"open_span", []map[string]any{act(1, "Twirl")}, false, []float64{180, 270, 270, 90, 180}},
		{"ignored", []map[string]any{act(1, "Twirl")}, true, []float64{180, 90, 90, 270, 180}},
		{"closed_span", []map[string]any{act(3, "Twirl"), act(1, "Twirl")}, false, []float64{180, 270, 270, 270, 180}},
		{"other_events", []map[string]any{act(1, "SetSpeed")}, false, []float64{180, 90, 90, 270, 180}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := mustParseRoot(t, testRoot([]float64{0, 90, 180, 90}, c.actions...))
			require.Equal(t, []float64{0, 90, 180, 90, 90}, lvl.Angles())
			assert.Equal(t, c.want, lvl.RelativeAngles(c.ignoreTwirls))
		})
	}
}

func TestRelativeAnglesFixtures(t *testing.T) {
	cases := []struct {
		file string
		want []float64
	}{
		{levels.Basic, []float64{180, 270, 180, 90, 90, 180}},
		{levels.Legacy, []float64{180, 180, 270, 90, 360, 180}},
	}

	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			lvl := loadFixture(t, c.file)
			got := lvl.RelativeAngles(false)
			assert.Equal(t, c.want, got)
			for _, a := range got {
				assert.True(t, a > 0 && a <= 360, "turn %v out of range", a)
			}
		})
	}
}

func TestSetAnglesTruncates(t *testing.T) {
	lvl := loadFixture(t, levels.Basic)
	tiles := lvl.Tiles()

	require.NoError(t, lvl.SetAngles([]float64{0, 45, 90}))

	assert.Equal(t, []float64{0, 45, 90}, lvl.Angles())
	assert.Equal(t, []int{1, 2}, floorsOf(lvl.Actions(nil)))
	assert.Len(t, lvl.Decorations(nil), 2)
	assert.Nil(t, tiles[5].Actions)
	requireFloorsConsistent(t, lvl)
}

func TestSetAnglesIgnoresExtra(t *testing.T) {
	lvl := loadFixture(t, levels.Basic)
	require.NoError(t, lvl.SetAngles([]float64{10, 20, 30, 40, 50, 60, 70, 80}))
	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60}, lvl.Angles())
}

func TestSetAnglesRejectsBadInput(t *testing.T) {
	lvl := loadFixture(t, levels.Basic)
	before := lvl.Angles()

	require.ErrorIs(t, lvl.SetAngles(nil), ErrAngle)
	require.ErrorIs(t, lvl.SetAngles([]float64{0, 361}), ErrAngle)
	assert.Equal(t, before, lvl.Angles())
}

func TestSetRelativeAngles(t *testing.T) {
	lvl := mustParseRoot(t, testRoot([]float64{0, 0, 0}))

	require.NoError(t, lvl.SetRelativeAngles([]float64{180, 90, 270}))

	assert.Equal(t, []float64{0, 90, 0}, lvl.Angles())
	assert.Equal(t, []float64{180, 90, 270}, lvl.RelativeAngles(true))
}
