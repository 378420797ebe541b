package level

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// Settings is the level's fixed metadata block. Every schema key is
// required when a level is loaded. Keys outside the schema are kept in Extra
// and written back on save.
type Settings struct {
	Version                 any `json:"version" yaml:"version"`
	Artist                  any `json:"artist" yaml:"artist"`
	SpecialArtistType       any `json:"specialArtistType" yaml:"specialArtistType"`
	ArtistPermission        any `json:"artistPermission" yaml:"artistPermission"`
	Song                    any `json:"song" yaml:"song"`
	Author                  any `json:"author" yaml:"author"`
	SeparateCountdownTime   any `json:"separateCountdownTime" yaml:"separateCountdownTime"`
	PreviewImage            any `json:"previewImage" yaml:"previewImage"`
	PreviewIcon             any `json:"previewIcon" yaml:"previewIcon"`
	PreviewIconColor        any `json:"previewIconColor" yaml:"previewIconColor"`
	PreviewSongStart        any `json:"previewSongStart" yaml:"previewSongStart"`
	PreviewSongDuration     any `json:"previewSongDuration" yaml:"previewSongDuration"`
	SeizureWarning          any `json:"seizureWarning" yaml:"seizureWarning"`
	LevelDesc               any `json:"levelDesc" yaml:"levelDesc"`
	LevelTags               any `json:"levelTags" yaml:"levelTags"`
	ArtistLinks             any `json:"artistLinks" yaml:"artistLinks"`
	SpeedTrialAim           any `json:"speedTrialAim" yaml:"speedTrialAim"`
	Difficulty              any `json:"difficulty" yaml:"difficulty"`
	RequiredMods            any `json:"requiredMods" yaml:"requiredMods"`
	SongFilename            any `json:"songFilename" yaml:"songFilename"`
	BPM                     any `json:"bpm" yaml:"bpm"`
	Volume                  any `json:"volume" yaml:"volume"`
	Offset                  any `json:"offset" yaml:"offset"`
	Pitch                   any `json:"pitch" yaml:"pitch"`
	Hitsound                any `json:"hitsound" yaml:"hitsound"`
	HitsoundVolume          any `json:"hitsoundVolume" yaml:"hitsoundVolume"`
	CountdownTicks          any `json:"countdownTicks" yaml:"countdownTicks"`
	TrackColorType          any `json:"trackColorType" yaml:"trackColorType"`
	TrackColor              any `json:"trackColor" yaml:"trackColor"`
	SecondaryTrackColor     any `json:"secondaryTrackColor" yaml:"secondaryTrackColor"`
	TrackColorAnimDuration  any `json:"trackColorAnimDuration" yaml:"trackColorAnimDuration"`
	TrackColorPulse         any `json:"trackColorPulse" yaml:"trackColorPulse"`
	TrackPulseLength        any `json:"trackPulseLength" yaml:"trackPulseLength"`
	TrackStyle              any `json:"trackStyle" yaml:"trackStyle"`
	TrackTexture            any `json:"trackTexture" yaml:"trackTexture"`
	TrackTextureScale       any `json:"trackTextureScale" yaml:"trackTextureScale"`
	TrackGlowIntensity      any `json:"trackGlowIntensity" yaml:"trackGlowIntensity"`
	TrackAnimation          any `json:"trackAnimation" yaml:"trackAnimation"`
	BeatsAhead              any `json:"beatsAhead" yaml:"beatsAhead"`
	TrackDisappearAnimation any `json:"trackDisappearAnimation" yaml:"trackDisappearAnimation"`
	BeatsBehind             any `json:"beatsBehind" yaml:"beatsBehind"`
	BackgroundColor         any `json:"backgroundColor" yaml:"backgroundColor"`
	ShowDefaultBGIfNoImage  any `json:"showDefaultBGIfNoImage" yaml:"showDefaultBGIfNoImage"`
	ShowDefaultBGTile       any `json:"showDefaultBGTile" yaml:"showDefaultBGTile"`
	DefaultBGTileColor      any `json:"defaultBGTileColor" yaml:"defaultBGTileColor"`
	DefaultBGShapeType      any `json:"defaultBGShapeType" yaml:"defaultBGShapeType"`
	DefaultBGShapeColor     any `json:"defaultBGShapeColor" yaml:"defaultBGShapeColor"`
	BGImage                 any `json:"bgImage" yaml:"bgImage"`
	BGImageColor            any `json:"bgImageColor" yaml:"bgImageColor"`
	Parallax                any `json:"parallax" yaml:"parallax"`
	BGDisplayMode           any `json:"bgDisplayMode" yaml:"bgDisplayMode"`
	ImageSmoothing          any `json:"imageSmoothing" yaml:"imageSmoothing"`
	LockRot                 any `json:"lockRot" yaml:"lockRot"`
	LoopBG                  any `json:"loopBG" yaml:"loopBG"`
	ScalingRatio            any `json:"scalingRatio" yaml:"scalingRatio"`
	RelativeTo              any `json:"relativeTo" yaml:"relativeTo"`
	Position                any `json:"position" yaml:"position"`
	Rotation                any `json:"rotation" yaml:"rotation"`
	Zoom                    any `json:"zoom" yaml:"zoom"`
	PulseOnFloor            any `json:"pulseOnFloor" yaml:"pulseOnFloor"`
	BGVideo                 any `json:"bgVideo" yaml:"bgVideo"`
	LoopVideo               any `json:"loopVideo" yaml:"loopVideo"`
	VidOffset               any `json:"vidOffset" yaml:"vidOffset"`
	FloorIconOutlines       any `json:"floorIconOutlines" yaml:"floorIconOutlines"`
	StickToFloors           any `json:"stickToFloors" yaml:"stickToFloors"`
	PlanetEase              any `json:"planetEase" yaml:"planetEase"`
	PlanetEaseParts         any `json:"planetEaseParts" yaml:"planetEaseParts"`
	PlanetEasePartBehavior  any `json:"planetEasePartBehavior" yaml:"planetEasePartBehavior"`
	DefaultTextColor        any `json:"defaultTextColor" yaml:"defaultTextColor"`
	DefaultTextShadowColor  any `json:"defaultTextShadowColor" yaml:"defaultTextShadowColor"`
	CongratsText            any `json:"congratsText" yaml:"congratsText"`
	PerfectText             any `json:"perfectText" yaml:"perfectText"`
	LegacyFlash             any `json:"legacyFlash" yaml:"legacyFlash"`
	LegacyCamRelativeTo     any `json:"legacyCamRelativeTo" yaml:"legacyCamRelativeTo"`
	LegacySpriteTiles       any `json:"legacySpriteTiles" yaml:"legacySpriteTiles"`

	Extra map[string]any `json:"-" yaml:"-"`
}

var settingsKeys, settingsFields = indexSettings()

func indexSettings() ([]string, map[string]int) {
	typ := reflect.TypeOf(Settings{})
	keys := make([]string, 0, typ.NumField())
	fields := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		keys = append(keys, tag)
		fields[tag] = i
	}
	return keys, fields
}

// SettingsKeys returns the schema keys in file order.
func SettingsKeys() []string {
	return append([]string(nil), settingsKeys...)
}

func newSettings(raw map[string]any) (*Settings, error) {
	s := &Settings{}
	v := reflect.ValueOf(s).Elem()
	for _, key := range settingsKeys {
		val, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: settings: missing key %q", ErrSchema, key)
		}
		setField(v.Field(settingsFields[key]), val)
	}
	for key, val := range raw {
		if _, ok := settingsFields[key]; ok {
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]any{}
		}
		s.Extra[key] = val
	}
	return s, nil
}

func setField(f reflect.Value, val any) {
	if val == nil {
		f.Set(reflect.Zero(f.Type()))
		return
	}
	f.Set(reflect.ValueOf(val))
}

// Get returns the value stored under a schema or extra key.
func (s *Settings) Get(key string) (any, bool) {
	if i, ok := settingsFields[key]; ok {
		return reflect.ValueOf(s).Elem().Field(i).Interface(), true
	}
	val, ok := s.Extra[key]
	return val, ok
}

// Set stores val under key. Unknown keys go to Extra.
func (s *Settings) Set(key string, val any) {
	if i, ok := settingsFields[key]; ok {
		setField(reflect.ValueOf(s).Elem().Field(i), val)
		return
	}
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}
	s.Extra[key] = val
}

// Apply sets every key in values.
func (s *Settings) Apply(values map[string]any) {
	for key, val := range values {
		s.Set(key, val)
	}
}

// ApplyYAML overlays a YAML mapping of settings keys onto s.
func (s *Settings) ApplyYAML(data []byte) error {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("level: settings yaml: %w", err)
	}
	s.Apply(values)
	return nil
}

// Map flattens the settings back into key/value form, schema and extras.
func (s *Settings) Map() map[string]any {
	out := make(map[string]any, len(settingsKeys)+len(s.Extra))
	for key, val := range s.Extra {
		out[key] = val
	}
	v := reflect.ValueOf(s).Elem()
	for _, key := range settingsKeys {
		out[key] = v.Field(settingsFields[key]).Interface()
	}
	return out
}

// MarshalJSON writes schema keys in file order followed by extras sorted
// by name.
func (s *Settings) MarshalJSON() ([]byte, error) {
	extras := make([]string, 0, len(s.Extra))
	for key := range s.Extra {
		if _, ok := settingsFields[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)

	v := reflect.ValueOf(s).Elem()
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, val any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(key)
		if err != nil {
			return err
		}
		b, err := marshalJSON(val)
		if err != nil {
			return fmt.Errorf("level: settings %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}
	for _, key := range settingsKeys {
		if err := write(key, v.Field(settingsFields[key]).Interface()); err != nil {
			return nil, err
		}
	}
	for _, key := range extras {
		if err := write(key, s.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML exports the settings as a flat mapping with plain numbers.
func (s *Settings) MarshalYAML() (any, error) {
	return plain(s.Map()), nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
