// Package config loads launchdash settings from YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/launchdash/internal/logging"
	"github.com/spektr-org/launchdash/schema"
)

// DefaultAddr is the dashboard's listen address.
const DefaultAddr = ":8090"

// Config is the complete runtime configuration.
type Config struct {
	Dataset string        `json:"dataset" yaml:"dataset"`
	Server  Server        `json:"server" yaml:"server"`
	Log     Log           `json:"log" yaml:"log"`
	Schema  schema.Config `json:"schema" yaml:"schema"`
}

// Server configures the HTTP process.
type Server struct {
	Addr            string   `json:"addr" yaml:"addr"`
	ShutdownTimeout Duration `json:"shutdownTimeout" yaml:"shutdown_timeout"`
}

// Log configures the slog default.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Dataset: "spacex_launch_dash.csv",
		Server: Server{
			Addr:            DefaultAddr,
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Log:    Log{Level: "info", Format: logging.FormatText},
		Schema: schema.Default(),
	}
}

// LoadFromPath reads a config file over Default. The format is taken from
// the extension (.yaml, .yml, .json) or, failing that, from the content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses data over Default. ext is a format hint; empty means detect.
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAML(data, &cfg)
	case ".json":
		return decodeJSON(data, &cfg)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return decodeJSON(data, &cfg)
	}
	return decodeYAML(data, &cfg)
}

func decodeYAML(data []byte, cfg *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

func decodeJSON(data []byte, cfg *Config) (*Config, error) {
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config json: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Dataset) == "" {
		errs = append(errs, errors.New("dataset path is required"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server addr is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout %s is negative", c.Server.ShutdownTimeout))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if err := c.Schema.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("schema: %w", err))
	}
	return errors.Join(errs...)
}
