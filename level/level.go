// Package level is an in-memory model of a rhythm-game level file.
//
// A Level is an ordered list of tiles. Each tile has an angle plus the
// actions and decorations attached to it; floor-less decorations live in a
// separate global list. The last tile is synthetic: it closes the path and
// copies its direction from the tile before it.
//
// Every event's floor field always names the tile that holds it. Tile
// insertion renumbers floors; event removal never does. A Level is not safe
// for concurrent use.
package level

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/adofai/lenient"
	"go.uber.org/zap"
)

const (
	keySettings    = "settings"
	keyActions     = "actions"
	keyDecorations = "decorations"
	keyAngleData   = "angleData"
	keyPathData    = "pathData"
)

// Level is a loaded level file.
type Level struct {
	Settings *Settings

	tiles       []*Tile
	globalDecos []*Decoration

	path   string
	cfg    Config
	logger *zap.Logger
}

// Load reads and parses the level file at path.
func Load(path string, cfg Config) (*Level, error) {
	cfg = cfg.withDefaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lvl, err := parseEncoded(raw, cfg)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	lvl.path = path
	return lvl, nil
}

// LoadFS reads a level from fsys. The result has no source path, so Save
// needs an explicit destination.
func LoadFS(fsys fs.FS, name string, cfg Config) (*Level, error) {
	cfg = cfg.withDefaults()
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	lvl, err := parseEncoded(raw, cfg)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", name, err)
	}
	return lvl, nil
}

// Parse builds a level from UTF-8 text. A leading byte-order mark is allowed.
func Parse(text []byte, cfg Config) (*Level, error) {
	cfg = cfg.withDefaults()
	root, err := lenient.Decode(text)
	if err != nil {
		return nil, err
	}
	return build(root, cfg)
}

func parseEncoded(raw []byte, cfg Config) (*Level, error) {
	text, err := decodeText(raw, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return Parse(text, cfg)
}

func build(root map[string]any, cfg Config) (*Level, error) {
	for _, key := range []string{keySettings, keyActions, keyDecorations} {
		if _, ok := root[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrSchema, key)
		}
	}

	angles, err := rootAngles(root)
	if err != nil {
		return nil, err
	}
	angles = append(angles, terminalAngle(angles))

	rawSettings, ok := root[keySettings].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an object", ErrSchema, keySettings)
	}
	settings, err := newSettings(rawSettings)
	if err != nil {
		return nil, err
	}

	lvl := &Level{
		Settings: settings,
		tiles:    make([]*Tile, 0, len(angles)),
		cfg:      cfg,
		logger:   cfg.Logger,
	}
	for _, a := range angles {
		lvl.tiles = append(lvl.tiles, NewTile(a, nil, nil))
	}

	actions, err := eventList(root, keyActions)
	if err != nil {
		return nil, err
	}
	for i, fields := range actions {
		a := &Action{Event: Event(fields)}
		floor, ok := a.Floor()
		if !ok {
			return nil, fmt.Errorf("%w: actions[%d]: missing or non-integer floor", ErrSchema, i)
		}
		if err := lvl.checkFloor(floor); err != nil {
			return nil, fmt.Errorf("actions[%d]: %w", i, err)
		}
		lvl.tiles[floor].Actions = append(lvl.tiles[floor].Actions, a)
	}

	decorations, err := eventList(root, keyDecorations)
	if err != nil {
		return nil, err
	}
	for i, fields := range decorations {
		d := &Decoration{Event: Event(fields)}
		if !d.Has(fieldFloor) {
			lvl.globalDecos = append(lvl.globalDecos, d)
			continue
		}
		floor, ok := d.Floor()
		if !ok {
			return nil, fmt.Errorf("%w: decorations[%d]: non-integer floor", ErrSchema, i)
		}
		if err := lvl.checkFloor(floor); err != nil {
			return nil, fmt.Errorf("decorations[%d]: %w", i, err)
		}
		lvl.tiles[floor].Decorations = append(lvl.tiles[floor].Decorations, d)
	}

	lvl.logger.Debug("level built",
		zap.Int("tiles", len(lvl.tiles)),
		zap.Int("actions", len(actions)),
		zap.Int("decorations", len(decorations)),
		zap.Int("global_decorations", len(lvl.globalDecos)))
	return lvl, nil
}

func rootAngles(root map[string]any) ([]float64, error) {
	if raw, ok := root[keyAngleData]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an array", ErrSchema, keyAngleData)
		}
		angles := make([]float64, len(list))
		for i, v := range list {
			a, ok := asFloat(v)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is not a number", ErrSchema, keyAngleData, i)
			}
			if !ValidAngle(a) {
				return nil, fmt.Errorf("%w: %s[%d]: %w %v", ErrSchema, keyAngleData, i, ErrAngle, a)
			}
			angles[i] = a
		}
		return angles, nil
	}
	if raw, ok := root[keyPathData]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a string", ErrSchema, keyPathData)
		}
		return DecodePathData(s)
	}
	return nil, fmt.Errorf("%w: missing key %q or %q", ErrSchema, keyAngleData, keyPathData)
}

func eventList(root map[string]any, key string) ([]map[string]any, error) {
	list, ok := root[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an array", ErrSchema, key)
	}
	out := make([]map[string]any, len(list))
	for i, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrSchema, key, i)
		}
		out[i] = m
	}
	return out, nil
}

// Path returns the file the level was loaded from, if any.
func (l *Level) Path() string { return l.path }

// Len returns the number of tiles, including the synthetic terminal tile.
func (l *Level) Len() int { return len(l.tiles) }

// Tiles returns the tile sequence. The slice is a copy; the tiles are not.
func (l *Level) Tiles() []*Tile {
	return append([]*Tile(nil), l.tiles...)
}

// Tile returns the tile at index i.
func (l *Level) Tile(i int) (*Tile, error) {
	if i < 0 || i >= len(l.tiles) {
		return nil, fmt.Errorf("%w: tile %d (tiles=%d)", ErrIndex, i, len(l.tiles))
	}
	return l.tiles[i], nil
}

// GlobalDecorations returns the decorations that have no floor.
func (l *Level) GlobalDecorations() []*Decoration {
	return append([]*Decoration(nil), l.globalDecos...)
}

func (l *Level) checkFloor(floor int) error {
	if floor < 0 || floor >= len(l.tiles) {
		return fmt.Errorf("%w: floor %d (tiles=%d)", ErrIndex, floor, len(l.tiles))
	}
	return nil
}
