package level

// Tile is one position on the path: the angle it is entered at plus the
// events attached to it.
type Tile struct {
	Angle       float64
	Actions     []*Action
	Decorations []*Decoration
}

// NewTile builds a tile that owns its own copies of the given slices.
func NewTile(angle float64, actions []*Action, decorations []*Decoration) *Tile {
	return &Tile{
		Angle:       angle,
		Actions:     append([]*Action(nil), actions...),
		Decorations: append([]*Decoration(nil), decorations...),
	}
}

// shift adds n to the floor of every event on the tile.
func (t *Tile) shift(n int) int {
	count := 0
	for _, a := range t.Actions {
		if f, ok := a.Floor(); ok {
			a.SetFloor(f + n)
			count++
		}
	}
	for _, d := range t.Decorations {
		if f, ok := d.Floor(); ok {
			d.SetFloor(f + n)
			count++
		}
	}
	return count
}
