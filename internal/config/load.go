package config

import (
	"errors"
	"fmt"
	"os"
)

// Load resolves the configuration from every source. explicit is the
// --config flag; when set the file must exist.
func Load(explicit string) (*Config, error) {
	cfg := Defaults()
	var layers []Settings

	if path := rcPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			layers = append(layers, ParseRC(data))
			cfg.Sources = append(cfg.Sources, path)
		}
	}

	path, data, err := findConfigFile(explicit)
	switch {
	case err == nil:
		fileCfg, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		layers = append(layers, fileCfg)
		cfg.Sources = append(cfg.Sources, path)
	case explicit != "" || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Environment variables override everything
	layers = append(layers, Env())

	if err := cfg.Apply(layers...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
