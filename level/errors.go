package level

import "errors"

var (
	// ErrSchema reports a missing or malformed required key.
	ErrSchema = errors.New("level: schema")
	// ErrIndex reports a floor or caller-supplied index outside the tile sequence.
	ErrIndex = errors.New("level: index out of range")
	// ErrAngle reports an angle that is neither a degree in [0,360) nor Midspin.
	ErrAngle = errors.New("level: invalid angle")
	// ErrNoPath is returned by Save when neither a path nor a source path is known.
	ErrNoPath = errors.New("level: no path to save to")
)
