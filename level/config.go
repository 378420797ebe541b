package level

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultEncoding is UTF-8 with a byte-order mark, which is what the level
// editor writes.
const DefaultEncoding = "utf-8-sig"

const defaultIndent = 4

// Config controls how level files are read and written.
type Config struct {
	// Encoding is a WHATWG encoding label or "utf-8-sig".
	Encoding string `yaml:"encoding"`
	// Indent is the number of spaces per level in saved files. Zero means
	// the default of 4; a negative value writes compact JSON.
	Indent int `yaml:"indent"`

	Logger *zap.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{Encoding: DefaultEncoding, Indent: defaultIndent, Logger: zap.NewNop()}
}

// LoadConfig reads a YAML config file. Unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("level: load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("level: unmarshal config %s: %w", path, err)
	}
	if _, err := lookupEncoding(cfg.Encoding); err != nil {
		return cfg, err
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	switch {
	case c.Indent == 0:
		c.Indent = defaultIndent
	case c.Indent < 0:
		c.Indent = -1
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
