package presets

import (
	"sync"
	"time"
)

// Cache keeps loaded settings presets and reloads one when its on-disk
// override appears, changes or goes away.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	preset SettingsPreset
	mod    time.Time
	onDisk bool
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Settings returns the named preset. reloaded is true when the preset was
// read from its source on this call rather than served from the cache.
func (c *Cache) Settings(name string) (p SettingsPreset, reloaded bool, err error) {
	key := cleanPresetPath(name)
	mod, onDisk := ModTime(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.onDisk == onDisk && e.mod.Equal(mod) {
		return e.preset, false, nil
	}

	p, err = LoadSettingsPreset(name)
	if err != nil {
		delete(c.entries, key)
		return p, false, err
	}
	c.entries[key] = cacheEntry{preset: p, mod: mod, onDisk: onDisk}
	return p, true, nil
}
