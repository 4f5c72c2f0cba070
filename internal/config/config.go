package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultTokenTTLMinutes = 30

// ErrMissingJWTSecret is returned when the JWT_SECRET environment variable
// is unset or empty. The process must refuse to start in that case.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is not set")

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		TokenTTLMinutes int `yaml:"token_ttl_minutes"`
	} `yaml:"auth"`

	// JWTSecret comes from the environment, never from the config file.
	JWTSecret string `yaml:"-"`
}

// LoadConfig reads configuration from the specified YAML file and the
// JWT_SECRET environment variable.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Auth.TokenTTLMinutes <= 0 {
		config.Auth.TokenTTLMinutes = defaultTokenTTLMinutes
	}

	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}
