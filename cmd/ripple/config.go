package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

const configFile = "ripple.toml"

// Config carries renderer defaults read from ripple.toml in the working
// directory. Every field is optional; flags always win over config.
type Config struct {
	Color          string `toml:"color"`
	Context        int    `toml:"context"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// loadConfig reads ripple.toml if present. A missing file is not an error.
func loadConfig() (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load %s: %w", configFile, err)
	}
	return cfg, nil
}
