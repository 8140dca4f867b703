// Package config loads the optional YAML defaults file for mdu, the way
// eargollo/ditto's internal/config loads config.yaml: a small struct
// unmarshaled with gopkg.in/yaml.v3, with an applyDefaults pass that fills
// in anything the file left zero-valued. Nothing here can change the core
// engine's semantics — it only supplies default flag values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults loadable from a YAML file, overridden by any flag
// explicitly set on the command line.
type Config struct {
	Workers   int    `yaml:"workers"`
	Retention int    `yaml:"retention"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	DBPath    string `yaml:"db_path"`
	Schedule  string `yaml:"schedule"`
}

// Default returns the built-in defaults, used when no config file exists.
func Default() *Config {
	c := &Config{
		Workers:   1,
		Retention: 5,
		LogLevel:  "info",
		LogFormat: "text",
		DBPath:    "./mdu.db",
		Schedule:  "0 * * * *",
	}
	return c
}

// Load reads and parses a YAML config file at path, applying defaults for
// any field left unset. A missing file is not an error: Load returns the
// built-in defaults unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

// applyDefaults replaces values the YAML document set to empty or out of
// range (a non-positive worker count, a negative retention, an empty
// string), the same pass ditto's Config.applyDefaults makes. A retention of
// 0 is kept as is.
func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Retention < 0 {
		c.Retention = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.DBPath == "" {
		c.DBPath = "./mdu.db"
	}
	if c.Schedule == "" {
		c.Schedule = "0 * * * *"
	}
}
