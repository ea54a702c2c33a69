// Package config provides the YAML defaults layer the command-line
// front end loads before applying flag overrides.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ideamans/ugoira2mp4/pkg/options"
	"github.com/ideamans/ugoira2mp4/pkg/ports"
)

// Config holds defaults for the encoder options, metadata, and ambient
// settings a YAML file may supply before CLI flags override them.
type Config struct {
	MaxFPS   float64           `yaml:"max_fps"`
	CRF      int               `yaml:"crf"`
	Preset   string            `yaml:"preset"`
	Level    string            `yaml:"level"`
	Profile  string            `yaml:"profile"`
	Metadata map[string]string `yaml:"metadata"`
	LogLevel string            `yaml:"log_level"`
}

// Defaults returns a Config populated with the conversion core's own
// defaults (max_fps=60, crf=18, preset=slow), matching options.Map's
// fallback values so an unconfigured run behaves identically whether or
// not a defaults file is supplied.
func Defaults() Config {
	return Config{
		MaxFPS:   60,
		CRF:      18,
		Preset:   "slow",
		LogLevel: ports.LevelInfo.String(),
	}
}

// LoadFromFile reads a YAML defaults file, falling back to Defaults()
// for any field the file doesn't set.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Options builds the options.Map the conversion core consumes from this
// config's encoder-related fields.
func (c Config) Options() options.Map {
	m := options.Map{
		"preset": c.Preset,
	}
	if c.CRF > 0 {
		m["crf"] = strconv.Itoa(c.CRF)
	}
	if c.Level != "" {
		m["level"] = c.Level
	}
	if c.Profile != "" {
		m["profile"] = c.Profile
	}
	return m
}

// MetadataMap builds the options.Map of container metadata this config
// supplies.
func (c Config) MetadataMap() options.Map {
	m := options.Map{}
	for k, v := range c.Metadata {
		m[k] = v
	}
	return m
}
