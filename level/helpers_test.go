package level

import (
	"encoding/json"
	"testing"

	"github.com/milk9111/adofai/levels"
	"github.com/stretchr/testify/require"
)

func testSettings() map[string]any {
	m := make(map[string]any, len(settingsKeys))
	for _, k := range SettingsKeys() {
		m[k] = ""
	}
	m["bpm"] = 100
	m["artist"] = "Tester"
	return m
}

// testRoot builds the decoded form of a level file with the given angles.
func testRoot(angles []float64, actions ...map[string]any) map[string]any {
	acts := make([]any, len(actions))
	for i, a := range actions {
		acts[i] = a
	}
	return map[string]any{
		"settings":    testSettings(),
		"angleData":   angles,
		"actions":     acts,
		"decorations": []any{},
	}
}

func parseRoot(root map[string]any) (*Level, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	return Parse(data, DefaultConfig())
}

func mustParseRoot(t *testing.T, root map[string]any) *Level {
	t.Helper()
	lvl, err := parseRoot(root)
	require.NoError(t, err)
	return lvl
}

func act(floor int, eventType string) map[string]any {
	return map[string]any{"floor": floor, "eventType": eventType}
}

func loadFixture(t *testing.T, name string) *Level {
	t.Helper()
	lvl, err := LoadFS(levels.LevelsFS, name, DefaultConfig())
	require.NoError(t, err)
	return lvl
}

// requireFloorsConsistent checks that every event sits on the tile its floor
// names.
func requireFloorsConsistent(t *testing.T, lvl *Level) {
	t.Helper()
	for i, tile := range lvl.Tiles() {
		for j, a := range tile.Actions {
			f, ok := a.Floor()
			require.True(t, ok, "tile %d action %d has no floor", i, j)
			require.Equal(t, i, f, "tile %d action %d", i, j)
		}
		for j, d := range tile.Decorations {
			f, ok := d.Floor()
			require.True(t, ok, "tile %d decoration %d has no floor", i, j)
			require.Equal(t, i, f, "tile %d decoration %d", i, j)
		}
	}
	for _, d := range lvl.GlobalDecorations() {
		require.False(t, d.Has("floor"))
	}
}

func floorsOf(actions []*Action) []int {
	out := make([]int, len(actions))
	for i, a := range actions {
		out[i], _ = a.Floor()
	}
	return out
}
