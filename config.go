package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AIConfig configures the Gemini adapter
type AIConfig struct {
	APIKey      string        `yaml:"api_key"`
	SearchModel string        `yaml:"search_model"`
	StackModel  string        `yaml:"stack_model"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MeiliConfig configures the optional catalog mirror
type MeiliConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Index  string `yaml:"index"`
}

// Config is the process configuration, read once at start.
type Config struct {
	Addr        string      `yaml:"addr"`
	LogMode     string      `yaml:"log_mode"`
	DatabaseURL string      `yaml:"database_url"`
	AI          AIConfig    `yaml:"ai"`
	Meili       MeiliConfig `yaml:"meili"`
}

func defaultConfig() Config {
	return Config{
		Addr:    ":50051",
		LogMode: "development",
		AI: AIConfig{
			SearchModel: "gemini-3-flash-preview",
			StackModel:  "gemini-3-pro-preview",
			Timeout:     90 * time.Second,
		},
		Meili: MeiliConfig{Index: "supplements"},
	}
}

// LoadConfig reads the optional YAML file at path and applies environment
// overrides on top. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	// first non-empty key wins
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.AI.APIKey = v
			break
		}
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("MEILI_URL"); v != "" {
		c.Meili.URL = v
	}
	if v := os.Getenv("MEILI_API_KEY"); v != "" {
		c.Meili.APIKey = v
	}
	if v := os.Getenv("AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.AI.Timeout = d
		}
	}
}
