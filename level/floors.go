package level

import (
	"fmt"

	"go.uber.org/zap"
)

// AppendTile adds a tile with the given angle at the end of the path. The
// new tile goes in front of the terminal tile, the terminal tile takes its
// direction from the new tile, and events on the terminal tile move with it.
func (l *Level) AppendTile(angle float64) error {
	return l.AppendTiles([]float64{angle})
}

// AppendTiles adds tiles at the end of the path. Only events on the terminal
// tile are renumbered.
func (l *Level) AppendTiles(angles []float64) error {
	if len(angles) == 0 {
		return nil
	}
	if err := validateAngles(angles); err != nil {
		return err
	}

	last := len(l.tiles) - 1
	terminal := l.tiles[last]
	added := make([]*Tile, len(angles))
	for i, a := range angles {
		added[i] = NewTile(a, nil, nil)
	}

	tiles := make([]*Tile, 0, len(l.tiles)+len(angles))
	tiles = append(tiles, l.tiles[:last]...)
	tiles = append(tiles, added...)
	tiles = append(tiles, terminal)
	l.tiles = tiles

	l.syncTerminal()
	shifted := terminal.shift(len(angles))

	l.logger.Debug("tiles appended",
		zap.Int("count", len(angles)),
		zap.Int("tiles", len(l.tiles)),
		zap.Int("shifted_events", shifted))
	return nil
}

// InsertTile inserts a tile before index. Events on tiles at or after index
// have their floor incremented.
func (l *Level) InsertTile(angle float64, index int) error {
	return l.InsertTiles([]float64{angle}, index)
}

// InsertTiles inserts tiles, in order, before index. index may name any
// existing tile including the terminal one.
func (l *Level) InsertTiles(angles []float64, index int) error {
	if index < 0 || index >= len(l.tiles) {
		return fmt.Errorf("%w: insert before %d (tiles=%d)", ErrIndex, index, len(l.tiles))
	}
	if len(angles) == 0 {
		return nil
	}
	if err := validateAngles(angles); err != nil {
		return err
	}

	shifted := 0
	for _, t := range l.tiles[index:] {
		shifted += t.shift(len(angles))
	}

	added := make([]*Tile, len(angles))
	for i, a := range angles {
		added[i] = NewTile(a, nil, nil)
	}
	tiles := make([]*Tile, 0, len(l.tiles)+len(angles))
	tiles = append(tiles, l.tiles[:index]...)
	tiles = append(tiles, added...)
	tiles = append(tiles, l.tiles[index:]...)
	atTerminal := index == len(l.tiles)-1
	l.tiles = tiles
	if atTerminal {
		l.syncTerminal()
	}

	l.logger.Debug("tiles inserted",
		zap.Int("count", len(angles)),
		zap.Int("index", index),
		zap.Int("tiles", len(l.tiles)),
		zap.Int("shifted_events", shifted))
	return nil
}

// syncTerminal re-derives the terminal tile's angle from the tiles before it.
func (l *Level) syncTerminal() {
	n := len(l.tiles)
	if n < 2 {
		return
	}
	prev := make([]float64, n-1)
	for i, t := range l.tiles[:n-1] {
		prev[i] = t.Angle
	}
	l.tiles[n-1].Angle = terminalAngle(prev)
}
