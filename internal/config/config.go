package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "simplerquests.yml"

type Config struct {
	Version       string         `yaml:"version" json:"version"`
	Server        ServerConfig   `yaml:"server" json:"server"`
	DataDir       string         `yaml:"data_dir" json:"data_dir" validate:"required"`
	Storage       string         `yaml:"storage" json:"storage" validate:"oneof=memory file"`
	Language      string         `yaml:"language" json:"language" validate:"required"`
	LanguageFile  string         `yaml:"language_file" json:"language_file,omitempty"`
	SettingsFile  string         `yaml:"settings_file" json:"settings_file,omitempty"`
	WatchSettings bool           `yaml:"watch_settings" json:"watch_settings"`
	Defaults      DefaultsConfig `yaml:"defaults" json:"defaults"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" validate:"required"`
}

type DefaultsConfig struct {
	ViewStyle string `yaml:"view_style" json:"view_style" validate:"oneof=all next complete"`
}

func Default() Config {
	return Config{
		Version:  "1",
		Server:   ServerConfig{Addr: ":42069"},
		DataDir:  "data",
		Storage:  "file",
		Language: "en",
		Defaults: DefaultsConfig{ViewStyle: "all"},
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = d.Server.Addr
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = d.DataDir
	}
	if strings.TrimSpace(c.Storage) == "" {
		c.Storage = d.Storage
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = d.Language
	}
	if strings.TrimSpace(c.Defaults.ViewStyle) == "" {
		c.Defaults.ViewStyle = d.Defaults.ViewStyle
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// Load reads path, applies defaults and environment overrides, then validates.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("unable to unmarshal config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	cfg.ApplyDefaults()
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
