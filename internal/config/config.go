package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Admin  AdminConfig  `yaml:"admin"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the persistence backend. Driver is "jsonfile" (the
// default single-blob store) or "sqlite".
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// AdminConfig holds the shared secret guarding admin routes.
type AdminConfig struct {
	Secret string `yaml:"secret"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Driver: "jsonfile",
			Path:   "applications.json",
		},
		Admin: AdminConfig{
			Secret: "Ptdn@2024#Secure!",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("HOSO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("HOSO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("HOSO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOSO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if driver := os.Getenv("HOSO_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if path := os.Getenv("HOSO_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if secret := os.Getenv("HOSO_ADMIN_SECRET"); secret != "" {
		cfg.Admin.Secret = secret
	}
	if level := os.Getenv("HOSO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.Driver != "jsonfile" && cfg.Store.Driver != "sqlite" {
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
