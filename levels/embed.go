// Package levels embeds sample level files in the editor's own loose format.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.adofai
var LevelsFS embed.FS

const (
	// Basic uses angleData, a byte-order mark, trailing commas and an
	// unknown settings key.
	Basic = "basic.adofai"
	// Legacy uses pathData with a midspin and concatenated event blocks.
	Legacy = "legacy.adofai"
)

// Load returns the raw bytes of an embedded level.
func Load(name string) ([]byte, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded level files.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
