package level

import (
	"fmt"

	"go.uber.org/zap"
)

// Actions returns matching actions in tile order, then in order within each
// tile. A nil predicate matches everything.
func (l *Level) Actions(pred Predicate) []*Action {
	var out []*Action
	for _, t := range l.tiles {
		for _, a := range t.Actions {
			if pred.match(a.Event) {
				out = append(out, a)
			}
		}
	}
	return out
}

// Decorations returns matching decorations in tile order, followed by
// matching global decorations.
func (l *Level) Decorations(pred Predicate) []*Decoration {
	var out []*Decoration
	for _, t := range l.tiles {
		for _, d := range t.Decorations {
			if pred.match(d.Event) {
				out = append(out, d)
			}
		}
	}
	for _, d := range l.globalDecos {
		if pred.match(d.Event) {
			out = append(out, d)
		}
	}
	return out
}

// RemoveActions removes every matching action and returns them. Matching is
// by identity: an action that merely has the same fields as a match stays.
func (l *Level) RemoveActions(pred Predicate) []*Action {
	removed := l.Actions(pred)
	l.dropActions(removed)
	return removed
}

// RemoveDecorations removes every matching decoration, tile-bound or
// global, and returns them.
func (l *Level) RemoveDecorations(pred Predicate) []*Decoration {
	removed := l.Decorations(pred)
	l.dropDecorations(removed)
	return removed
}

func (l *Level) dropActions(actions []*Action) {
	if len(actions) == 0 {
		return
	}
	drop := make(map[*Action]struct{}, len(actions))
	for _, a := range actions {
		drop[a] = struct{}{}
	}
	for _, t := range l.tiles {
		t.Actions = keep(t.Actions, drop)
	}
	l.logger.Debug("actions removed", zap.Int("count", len(actions)))
}

func (l *Level) dropDecorations(decorations []*Decoration) {
	if len(decorations) == 0 {
		return
	}
	drop := make(map[*Decoration]struct{}, len(decorations))
	for _, d := range decorations {
		drop[d] = struct{}{}
	}
	for _, t := range l.tiles {
		t.Decorations = keep(t.Decorations, drop)
	}
	l.globalDecos = keep(l.globalDecos, drop)
	l.logger.Debug("decorations removed", zap.Int("count", len(decorations)))
}

func keep[T comparable](events []T, drop map[T]struct{}) []T {
	out := events[:0:0]
	for _, e := range events {
		if _, ok := drop[e]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// AddAction attaches a to the tile named by its floor and returns its index
// within that tile.
func (l *Level) AddAction(a *Action) (int, error) {
	floor, ok := a.Floor()
	if !ok {
		return 0, fmt.Errorf("%w: action without integer floor", ErrSchema)
	}
	if err := l.checkFloor(floor); err != nil {
		return 0, err
	}
	t := l.tiles[floor]
	t.Actions = append(t.Actions, a)
	return len(t.Actions) - 1, nil
}

// AddDecoration attaches d to the tile named by its floor, or to the global
// list when it has none, and returns its index within that collection.
func (l *Level) AddDecoration(d *Decoration) (int, error) {
	if !d.Has(fieldFloor) {
		l.globalDecos = append(l.globalDecos, d)
		return len(l.globalDecos) - 1, nil
	}
	floor, ok := d.Floor()
	if !ok {
		return 0, fmt.Errorf("%w: decoration with non-integer floor", ErrSchema)
	}
	if err := l.checkFloor(floor); err != nil {
		return 0, err
	}
	t := l.tiles[floor]
	t.Decorations = append(t.Decorations, d)
	return len(t.Decorations) - 1, nil
}

// PopAction removes and returns the action at position index on tile.
func (l *Level) PopAction(tile, index int) (*Action, error) {
	t, err := l.Tile(tile)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(t.Actions) {
		return nil, fmt.Errorf("%w: action %d on tile %d (actions=%d)", ErrIndex, index, tile, len(t.Actions))
	}
	a := t.Actions[index]
	t.Actions = append(t.Actions[:index:index], t.Actions[index+1:]...)
	return a, nil
}

// PopDecoration removes and returns the decoration at position index on tile.
func (l *Level) PopDecoration(tile, index int) (*Decoration, error) {
	t, err := l.Tile(tile)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(t.Decorations) {
		return nil, fmt.Errorf("%w: decoration %d on tile %d (decorations=%d)", ErrIndex, index, tile, len(t.Decorations))
	}
	d := t.Decorations[index]
	t.Decorations = append(t.Decorations[:index:index], t.Decorations[index+1:]...)
	return d, nil
}

// ReplaceActionField sets field to value on every matching action that
// already has it. Matches are removed and re-added, so they end up last on
// their tile. Setting "floor" moves the actions to that tile.
func (l *Level) ReplaceActionField(pred Predicate, field string, value any) error {
	matches := l.Actions(pred)
	if field == fieldFloor && len(matches) > 0 {
		if err := l.checkFloorValue(value); err != nil {
			return err
		}
	}
	l.dropActions(matches)
	for _, a := range matches {
		a.Set(field, value)
	}
	for _, a := range matches {
		if _, err := l.AddAction(a); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceDecorationField is ReplaceActionField for decorations. A global
// decoration has no floor field, so setting "floor" leaves it global.
func (l *Level) ReplaceDecorationField(pred Predicate, field string, value any) error {
	matches := l.Decorations(pred)
	if field == fieldFloor {
		for _, d := range matches {
			if d.Has(fieldFloor) {
				if err := l.checkFloorValue(value); err != nil {
					return err
				}
				break
			}
		}
	}
	l.dropDecorations(matches)
	for _, d := range matches {
		d.Set(field, value)
	}
	for _, d := range matches {
		if _, err := l.AddDecoration(d); err != nil {
			return err
		}
	}
	return nil
}

func (l *Level) checkFloorValue(value any) error {
	floor, ok := asInt(value)
	if !ok {
		return fmt.Errorf("%w: floor must be an integer, got %T", ErrSchema, value)
	}
	return l.checkFloor(floor)
}
