package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "stagekit.json"

	// DefaultPort is the default server port.
	DefaultPort = 4600

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultStoreDir is the default definition store directory.
	DefaultStoreDir = "stages"
)

// Config represents the complete stagekit.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Definition is the name of the stage definition the server tracks.
	Definition string `json:"definition,omitempty"`

	// Store is the directory holding stage definitions.
	Store string `json:"store,omitempty"`

	// Server contains serving configuration.
	Server ServerConfig `json:"server,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to serve on.
	Port int `json:"port,omitempty"`

	// Metrics exposes /metrics when true.
	Metrics bool `json:"metrics,omitempty"`
}

// Default returns a config with default values applied.
func Default() *Config {
	return &Config{
		Store: DefaultStoreDir,
		Server: ServerConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: true,
		},
	}
}

// Load reads stagekit.json from dir. A missing file yields the defaults; a
// present but malformed file is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.configPath = path
	return cfg, nil
}

// Save writes the config to dir as indented JSON.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), append(data, '\n'), 0o644)
}

// Path returns where the config was loaded from, or "" for defaults.
func (c *Config) Path() string { return c.configPath }

func (c *Config) applyDefaults() {
	if c.Store == "" {
		c.Store = DefaultStoreDir
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}
