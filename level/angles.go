package level

import (
	"sort"

	"github.com/milk9111/adofai/common"
)

const twirlEventType = "Twirl"

// Angles returns the absolute angle of every tile, terminal tile included.
func (l *Level) Angles() []float64 {
	out := make([]float64, len(l.tiles))
	for i, t := range l.tiles {
		out[i] = t.Angle
	}
	return out
}

// SetAngles overwrites tile angles by position. The tile sequence is cut to
// len(angles), dropping the removed tiles together with their events. Angles
// beyond the current tile count are ignored.
func (l *Level) SetAngles(angles []float64) error {
	if len(angles) == 0 {
		return ErrAngle
	}
	if err := validateAngles(angles); err != nil {
		return err
	}
	if len(angles) < len(l.tiles) {
		for _, t := range l.tiles[len(angles):] {
			t.Actions, t.Decorations = nil, nil
		}
		l.tiles = l.tiles[:len(angles)]
	}
	for i, t := range l.tiles {
		t.Angle = angles[i]
	}
	return nil
}

// RelativeAngles returns the turn taken at each tile, in (0,360].
//
// Midspin tiles are dropped and everything before each one is turned around
// by 180 degrees. The first entry is a virtual straight-ahead 180 for
// entering the path. Unless ignoreTwirls is set, turns inside a twirl span
// are mirrored; spans run between consecutive Twirl actions and an unpaired
// final Twirl stays open to the end of the path.
func (l *Level) RelativeAngles(ignoreTwirls bool) []float64 {
	abs := l.Angles()
	source := make([]int, len(abs))
	for i := range source {
		source[i] = i
	}

	for p := len(abs) - 1; p >= 0; p-- {
		if abs[p] != Midspin {
			continue
		}
		for j := 0; j < p; j++ {
			if abs[j] != Midspin {
				abs[j] = common.WrapDegrees(abs[j] + 180)
			}
		}
		abs = append(abs[:p], abs[p+1:]...)
		source = append(source[:p], source[p+1:]...)
	}

	rel := make([]float64, 0, len(abs))
	if len(abs) > 0 {
		rel = append(rel, 180)
	}
	for k := 1; k < len(abs); k++ {
		rel = append(rel, common.WrapDegrees(abs[k-1]-abs[k]+180))
	}

	if !ignoreTwirls {
		spans := l.twirlSpans()
		for k, a := range rel {
			if a != Midspin && inSpans(spans, source[k]) {
				rel[k] = common.MirrorTurn(a)
			}
		}
	}

	for k, a := range rel {
		rel[k] = common.NormalizeTurn(a)
	}
	return rel
}

// SetRelativeAngles rebuilds absolute angles from turns, starting from a
// heading of 0, and writes them with SetAngles.
//
// This is not the inverse of RelativeAngles when the level has twirls or
// midspins: twirl mirroring and midspin removal are not undone.
func (l *Level) SetRelativeAngles(rel []float64) error {
	angles := make([]float64, len(rel))
	prev := 0.0
	for i, r := range rel {
		prev = common.WrapDegrees(prev - r + 180)
		angles[i] = prev
	}
	return l.SetAngles(angles)
}

type span struct{ start, end int }

func (l *Level) twirlSpans() []span {
	var floors []int
	for i, t := range l.tiles {
		for _, a := range t.Actions {
			if a.Type() == twirlEventType {
				floors = append(floors, i)
			}
		}
	}
	if len(floors)%2 == 1 {
		floors = append(floors, len(l.tiles)+10)
	}
	sort.Ints(floors)

	spans := make([]span, 0, len(floors)/2)
	for i := 0; i+1 < len(floors); i += 2 {
		spans = append(spans, span{start: floors[i], end: floors[i+1]})
	}
	return spans
}

func inSpans(spans []span, idx int) bool {
	for _, s := range spans {
		if idx >= s.start && idx < s.end {
			return true
		}
	}
	return false
}
