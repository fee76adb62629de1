package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the plan server and tools
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Bot     BotConfig     `yaml:"bot"`
}

// ServerConfig configures the plan server listener
type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig selects and locates the snapshot store
type StorageConfig struct {
	Type        string `yaml:"type"` // "json" or "postgres"
	File        string `yaml:"file"`
	DatabaseURL string `yaml:"database_url"`
}

// SearchConfig tunes the path search
type SearchConfig struct {
	// MaxIterations caps A* expansions per search; 0 means unbounded
	MaxIterations int `yaml:"max_iterations"`
}

// BotConfig configures the fallback bots
type BotConfig struct {
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Storage: StorageConfig{
			Type:        "json",
			File:        "snapshots.json",
			DatabaseURL: "host=localhost user=vindinium password=vindinium dbname=vindinium_bot sslmode=disable",
		},
		Bot: BotConfig{Seed: 1},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("DB_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := getenv("DB_FILE"); v != "" {
		c.Storage.File = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Storage.DatabaseURL = v
	}
	if v := getenv("SEARCH_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_MAX_ITERATIONS %q: %w", v, err)
		}
		c.Search.MaxIterations = n
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "json", "postgres":
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Search.MaxIterations < 0 {
		return fmt.Errorf("search.max_iterations must not be negative, got %d", c.Search.MaxIterations)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	return nil
}
