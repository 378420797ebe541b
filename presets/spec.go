package presets

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SettingsPreset is a named overlay of level settings keys.
type SettingsPreset struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Settings    map[string]any `yaml:"settings"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("presets: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("presets: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadSettingsPreset(name string) (SettingsPreset, error) {
	p, err := LoadSpec[SettingsPreset](name)
	if err != nil {
		return p, err
	}
	if len(p.Settings) == 0 {
		return p, fmt.Errorf("presets: %s: no settings", name)
	}
	return p, nil
}
