package common

import "math"

// Mod returns a modulo m with the sign of m, so Mod(-90, 360) == 270.
func Mod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(a float64) float64 {
	return Mod(a, 360)
}

// NormalizeTurn maps a relative turn into (0, 360]. A zero turn becomes 360.
// For whole degrees this matches ((a-1) mod 360) + 1.
func NormalizeTurn(a float64) float64 {
	r := Mod(a, 360)
	if r == 0 {
		return 360
	}
	return r
}

// MirrorTurn reflects a relative turn, keeping the result in (0, 360].
func MirrorTurn(a float64) float64 {
	return NormalizeTurn(360 - a)
}
