package level

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

type levelFile struct {
	AngleData   []float64 `json:"angleData"`
	Settings    *Settings `json:"settings"`
	Actions     []Event   `json:"actions"`
	Decorations []Event   `json:"decorations"`
}

func (l *Level) file() levelFile {
	f := levelFile{
		AngleData:   make([]float64, 0, len(l.tiles)),
		Settings:    l.Settings,
		Actions:     []Event{},
		Decorations: []Event{},
	}
	for _, t := range l.tiles {
		f.AngleData = append(f.AngleData, t.Angle)
		for _, a := range t.Actions {
			f.Actions = append(f.Actions, a.Event)
		}
		for _, d := range t.Decorations {
			f.Decorations = append(f.Decorations, d.Event)
		}
	}
	for _, d := range l.globalDecos {
		f.Decorations = append(f.Decorations, d.Event)
	}
	// The terminal tile is synthetic and rebuilt on load.
	if len(f.AngleData) > 0 {
		f.AngleData = f.AngleData[:len(f.AngleData)-1]
	}
	return f
}

// MarshalJSON encodes the level in the on-disk layout.
func (l *Level) MarshalJSON() ([]byte, error) {
	return marshalJSON(l.file())
}

// Bytes returns the level as indented JSON text.
func (l *Level) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if l.cfg.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", l.cfg.Indent))
	}
	if err := enc.Encode(l.file()); err != nil {
		return nil, fmt.Errorf("level: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the level to path, or back to the file it was loaded from
// when path is empty.
func (l *Level) Save(path string) error {
	if path == "" {
		path = l.path
	}
	if path == "" {
		return ErrNoPath
	}

	text, err := l.Bytes()
	if err != nil {
		return err
	}
	data, err := encodeText(text, l.cfg.Encoding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	l.logger.Debug("level saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
