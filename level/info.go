package level

import (
	"fmt"
	"os"

	"github.com/milk9111/adofai/lenient"
	"github.com/tidwall/gjson"
)

// Info is a summary of a level file read without building the model.
type Info struct {
	Artist string
	Song   string
	Author string
	BPM    float64
	// Tiles counts path tiles plus the synthetic terminal tile.
	Tiles       int
	Actions     int
	Decorations int
}

// ReadInfo peeks at a level file's metadata.
func ReadInfo(path string, cfg Config) (Info, error) {
	cfg = cfg.withDefaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}
	text, err := decodeText(raw, cfg.Encoding)
	if err != nil {
		return Info{}, err
	}
	res, err := lenient.Query(text, `{settings.artist,settings.song,settings.author,settings.bpm,"angles":angleData.#,pathData,"actions":actions.#,"decorations":decorations.#}`)
	if err != nil {
		return Info{}, fmt.Errorf("level: read info %s: %w", path, err)
	}
	return infoFrom(res)
}

func infoFrom(res gjson.Result) (Info, error) {
	info := Info{
		Artist:      res.Get("artist").String(),
		Song:        res.Get("song").String(),
		Author:      res.Get("author").String(),
		BPM:         res.Get("bpm").Float(),
		Actions:     int(res.Get("actions").Int()),
		Decorations: int(res.Get("decorations").Int()),
	}
	if angles := res.Get("angles"); angles.Exists() {
		info.Tiles = int(angles.Int()) + 1
	} else if path := res.Get("pathData"); path.Exists() {
		info.Tiles = len([]rune(path.String())) + 1
	} else {
		return Info{}, fmt.Errorf("%w: missing key %q or %q", ErrSchema, keyAngleData, keyPathData)
	}
	return info, nil
}
