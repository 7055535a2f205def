package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/regenrek/peakydock/internal/appdirs"
	"github.com/regenrek/peakydock/internal/identity"
	"github.com/regenrek/peakydock/internal/runenv"
	"github.com/regenrek/peakydock/internal/userpath"
)

// DefaultPath returns the config file in the config dir, preferring one that
// exists. When none exists it returns the config.yml path.
func DefaultPath() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	for _, name := range identity.ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// Load reads path, which may be YAML or TOML by extension. A missing file,
// or PEAKYDOCK_FRESH_CONFIG, yields the defaults.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" || runenv.FreshConfigEnabled() {
		return Defaults(), nil
	}
	path = userpath.ExpandUser(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Parse(data, FormatFor(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Defaults()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg in format, YAML unless FormatTOML.
func Marshal(cfg Config, format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}
