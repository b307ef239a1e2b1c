package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched, first hit wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/food-menu/config.yaml",
	"/etc/food-menu/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces the environment overrides, e.g. MENU_SERVER_PORT.
const envPrefix = "MENU_"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Report   ReportConfig   `koanf:"report"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Empty means run without a
	// database and serve the built-in seed catalog.
	URL        string        `koanf:"url"`
	Migrations string        `koanf:"migrations"`
	Attempts   int           `koanf:"attempts"`
	Delay      time.Duration `koanf:"delay"`
}

type ReportConfig struct {
	Enabled bool   `koanf:"enabled"`
	Token   string `koanf:"token"`
	// Chat is the dietitian's Telegram chat identifier.
	Chat int64 `koanf:"chat"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:        "",
			Migrations: "migrations",
			Attempts:   10,
			Delay:      2 * time.Second,
		},
		Report: ReportConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

// Load builds the configuration in three layers: struct defaults, an
// optional YAML file, then MENU_* environment variables on top.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// MENU_SERVER_PORT -> server.port
	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		return ""
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Report.Enabled {
		if c.Report.Token == "" {
			return fmt.Errorf("report enabled but no telegram token configured")
		}
		if c.Report.Chat == 0 {
			return fmt.Errorf("report enabled but no dietitian chat configured")
		}
	}
	return nil
}
