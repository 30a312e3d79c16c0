// Package config loads toolkit settings from a YAML file with environment
// overrides. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the toolkit.
type Config struct {
	CorpusDir          string  `yaml:"corpus_dir"`
	ChunkSize          int     `yaml:"chunk_size"`
	ChunkOverlap       int     `yaml:"chunk_overlap"`
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
	TopK               int     `yaml:"top_k"`
	MaxRounds          int     `yaml:"max_rounds"`
	Team               string  `yaml:"team"`

	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CorpusDir:          "./data",
		ChunkSize:          800,
		ChunkOverlap:       100,
		RelevanceThreshold: 0.3,
		TopK:               5,
		MaxRounds:          6,
		Team:               "research_team",
		Model:              "gpt-4o-mini",
		LogLevel:           "info",
	}
}

// Load builds the configuration: defaults, then the YAML file if path is
// non-empty, then environment variables. A .env file is loaded first when
// one exists.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.CorpusDir, "DOCUFLOW_CORPUS_DIR")
	setInt(&c.ChunkSize, "DOCUFLOW_CHUNK_SIZE")
	setInt(&c.ChunkOverlap, "DOCUFLOW_CHUNK_OVERLAP")
	setFloat(&c.RelevanceThreshold, "DOCUFLOW_RELEVANCE_THRESHOLD")
	setInt(&c.TopK, "DOCUFLOW_TOP_K")
	setInt(&c.MaxRounds, "DOCUFLOW_MAX_ROUNDS")
	setString(&c.Team, "DOCUFLOW_TEAM")
	setString(&c.Model, "DOCUFLOW_MODEL")
	setString(&c.BaseURL, "DOCUFLOW_BASE_URL")
	setString(&c.APIKey, "DOCUFLOW_API_KEY")
	setString(&c.APIKey, "OPENAI_API_KEY")
	setString(&c.LogLevel, "DOCUFLOW_LOG_LEVEL")
}

func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("max_rounds must be positive, got %d", c.MaxRounds)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
