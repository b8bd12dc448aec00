package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for every server setting
const envPrefix = "EARLYPENSION"

// Settings controls the HTTP listener
type Settings struct {
	Addr               string        `mapstructure:"addr"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	MaxRequestBodySize int           `mapstructure:"max_request_body_size"`
}

// DefaultSettings returns the settings used when nothing overrides them
func DefaultSettings() Settings {
	return Settings{
		Addr:               ":8080",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: 64 * 1024,
	}
}

// NewViper builds a Viper instance with the server defaults, YAML file type,
// EARLYPENSION_ env prefix and automatic env binding, so "read_timeout"
// resolves to EARLYPENSION_READ_TIMEOUT.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	d := DefaultSettings()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("write_timeout", d.WriteTimeout)
	v.SetDefault("max_request_body_size", d.MaxRequestBodySize)
	return v
}

// LoadSettings reads the optional YAML file at configPath into v, then
// unmarshals and validates. Environment variables and any flags bound to v
// take precedence over the file.
func LoadSettings(v *viper.Viper, configPath string) (*Settings, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read server config %q: %w", configPath, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server settings: %w", err)
	}
	return settings, nil
}

// Validate checks the listener settings
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got %s", s.ReadTimeout)
	}
	if s.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be positive, got %s", s.WriteTimeout)
	}
	if s.MaxRequestBodySize <= 0 {
		return fmt.Errorf("max_request_body_size must be positive, got %d", s.MaxRequestBodySize)
	}
	return nil
}
