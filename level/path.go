package level

import (
	"fmt"
	"math"

	"github.com/milk9111/adofai/common"
)

// Midspin is the sentinel angle for an undefined direction.
const Midspin = 999.0

var pathChars = map[rune]float64{
	'R': 0, 'p': 15, 'J': 30, 'E': 45, 'T': 60, 'o': 75,
	'U': 90, 'q': 105, 'G': 120, 'Q': 135, 'H': 150, 'W': 165,
	'L': 180, 'x': 195, 'N': 210, 'Z': 225, 'F': 240, 'V': 255,
	'D': 270, 'Y': 285, 'B': 300, 'C': 315, 'M': 330, 'A': 345,
	'!': Midspin,
}

// DecodePathData expands the compact pathData string into absolute angles.
func DecodePathData(path string) ([]float64, error) {
	angles := make([]float64, 0, len(path))
	for i, ch := range path {
		a, ok := pathChars[ch]
		if !ok {
			return nil, fmt.Errorf("%w: pathData: unknown character %q at %d", ErrSchema, ch, i)
		}
		angles = append(angles, a)
	}
	return angles, nil
}

// ValidAngle reports whether a is a degree in [0,360) or Midspin.
func ValidAngle(a float64) bool {
	if a == Midspin {
		return true
	}
	return !math.IsNaN(a) && a >= 0 && a < 360
}

func validateAngles(angles []float64) error {
	for i, a := range angles {
		if !ValidAngle(a) {
			return fmt.Errorf("%w: %v at position %d", ErrAngle, a, i)
		}
	}
	return nil
}

// terminalAngle is the angle of the synthetic tile that closes the path: the
// last angle, or the last real angle turned around when the path ends on a
// midspin.
func terminalAngle(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	last := angles[len(angles)-1]
	if last != Midspin {
		return last
	}
	for i := len(angles) - 2; i >= 0; i-- {
		if angles[i] != Midspin {
			return common.WrapDegrees(angles[i] + 180)
		}
	}
	return 180
}
