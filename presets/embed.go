// Package presets holds reusable settings overlays (YAML) and event filter
// scripts (tengo). Files under ./presets on disk take precedence over the
// embedded copies, so presets can be edited without a rebuild.
package presets

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PresetsFS embed.FS

// Dir is the on-disk override directory, relative to the working directory.
var Dir = "presets"

func Load(name string) ([]byte, error) {
	clean := cleanPresetPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PresetsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the modification time of the on-disk override, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPresetPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded settings presets.
func Names() []string {
	entries, err := fs.ReadDir(PresetsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// cleanPresetPath maps "dark", "dark.yaml" or "presets/dark.yaml" to the
// embedded name "dark.yaml".
func cleanPresetPath(name string) string {
	s := trimPrefixes(name, "presets/")
	if s == "" {
		return ""
	}
	if path.Ext(s) != ".yaml" && path.Ext(s) != ".yml" {
		s += ".yaml"
	}
	return s
}

// cleanScriptPath maps a script name, with or without its directories and
// extension, to "scripts/<name>.tengo".
func cleanScriptPath(name string) string {
	s := trimPrefixes(name, "presets/", "scripts/")
	if s == "" {
		return ""
	}
	return path.Join("scripts", strings.TrimSuffix(s, ".tengo")+".tengo")
}

func trimPrefixes(name string, prefixes ...string) string {
	s := filepath.ToSlash(name)
	for _, p := range prefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
