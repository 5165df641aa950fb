// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles ruleschema project configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dacolabs/ruleschema/engine"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default configuration file name.
const FileName = "ruleschema.yaml"

// Config represents the ruleschema.yaml project configuration file.
type Config struct {
	Version int          `yaml:"version"`
	Engine  EngineConfig `yaml:"engine,omitempty"`
	Log     LogConfig    `yaml:"log,omitempty"`
	Server  ServerConfig `yaml:"server,omitempty"`
}

// EngineConfig configures the JSON Schema validation engine.
type EngineConfig struct {
	Draft string `yaml:"draft,omitempty"`
	// AssertFormat defaults to true when unset.
	AssertFormat *bool `yaml:"assertFormat,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// ServerConfig configures the HTTP validation service.
type ServerConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Schemas string `yaml:"schemas,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	assertFormat := true
	return &Config{
		Version: CurrentConfigVersion,
		Engine: EngineConfig{
			Draft:        engine.Draft7,
			AssertFormat: &assertFormat,
		},
		Log:    LogConfig{Level: "warn"},
		Server: ServerConfig{Addr: ":8080", Schemas: "./schemas"},
	}
}

// Load reads a Config from a file path. Unset fields take their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Engine.Draft == "" {
		c.Engine.Draft = def.Engine.Draft
	}
	if c.Engine.AssertFormat == nil {
		c.Engine.AssertFormat = def.Engine.AssertFormat
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.Schemas == "" {
		c.Server.Schemas = def.Server.Schemas
	}
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if _, err := engine.ParseDraft(c.Engine.Draft); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// AssertFormat reports whether format assertions are enabled.
func (c *Config) AssertFormat() bool {
	return c.Engine.AssertFormat == nil || *c.Engine.AssertFormat
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
