// Package config loads Loupe configuration from .loupe.yaml with
// defaults and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/loupe-search/loupe/internal/errors"
)

// Config represents the complete Loupe configuration.
type Config struct {
	Version int          `yaml:"version"`
	Paths   PathsConfig  `yaml:"paths"`
	Search  SearchConfig `yaml:"search"`
	Model   ModelConfig  `yaml:"model"`
	Log     LogConfig    `yaml:"log"`
}

// PathsConfig configures which paths to include and exclude when
// building the corpus.
type PathsConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// MaxFileSizeKB skips files larger than this (default: 1024).
	MaxFileSizeKB int `yaml:"max_file_size_kb"`
}

// SearchConfig configures default search parameters.
type SearchConfig struct {
	// MinScore is the minimum score for a match to be reported (0.0-1.0).
	MinScore float64 `yaml:"min_score"`
	// MaxResults caps the merged result list.
	MaxResults int `yaml:"max_results"`
	// ContextLines is the number of surrounding lines attached to each
	// result when context is requested.
	ContextLines int `yaml:"context_lines"`
	// IncludeContext attaches surrounding lines to results by default.
	IncludeContext bool `yaml:"include_context"`
}

// ModelConfig configures the neural embedding model location.
type ModelConfig struct {
	// Path overrides the default model location (~/.loupe/models/model.onnx).
	Path string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// defaultExcludePatterns are always excluded.
var defaultExcludePatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/target/**",
	"**/build/**",
	"**/dist/**",
	"**/__pycache__/**",
	"**/.cache/**",
	"**/.loupe/**",
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Include:       []string{},
			Exclude:       defaultExcludePatterns,
			MaxFileSizeKB: 1024,
		},
		Search: SearchConfig{
			MinScore:     0.3,
			MaxResults:   100,
			ContextLines: 2,
		},
		Model: ModelConfig{
			Path: DefaultModelPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultModelPath returns the default ONNX model location.
func DefaultModelPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".loupe", "models", "model.onnx")
	}
	return filepath.Join(home, ".loupe", "models", "model.onnx")
}

// Load loads configuration for the given project directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Project config (.loupe.yaml in the project root)
//  3. Environment variables (LOUPE_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load configuration from .loupe.yaml or .loupe.yml.
func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ".loupe.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".loupe.yml")
	if _, err := os.Stat(ymlPath); err == nil {
		return c.loadYAML(ymlPath)
	}

	// No config file is fine, defaults apply.
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.ErrCodeConfigNotFound,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if len(other.Paths.Include) > 0 {
		c.Paths.Include = other.Paths.Include
	}
	if len(other.Paths.Exclude) > 0 {
		// Merge with defaults rather than replace
		c.Paths.Exclude = append(c.Paths.Exclude, other.Paths.Exclude...)
	}
	if other.Paths.MaxFileSizeKB != 0 {
		c.Paths.MaxFileSizeKB = other.Paths.MaxFileSizeKB
	}

	if other.Search.MinScore != 0 {
		c.Search.MinScore = other.Search.MinScore
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.ContextLines != 0 {
		c.Search.ContextLines = other.Search.ContextLines
	}
	if other.Search.IncludeContext {
		c.Search.IncludeContext = true
	}

	if other.Model.Path != "" {
		c.Model.Path = other.Model.Path
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// applyEnvOverrides applies LOUPE_* environment variables.
// Env vars have the highest precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOUPE_MODEL_PATH"); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv("LOUPE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOUPE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.MaxResults = n
		}
	}
	if v := os.Getenv("LOUPE_MIN_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			c.Search.MinScore = f
		}
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Search.MinScore < 0 || c.Search.MinScore > 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"search.min_score must be in [0, 1], got %v", c.Search.MinScore)
	}
	if c.Search.MaxResults < 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.ContextLines < 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"search.context_lines must be non-negative, got %d", c.Search.ContextLines)
	}
	if c.Paths.MaxFileSizeKB < 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"paths.max_file_size_kb must be positive, got %d", c.Paths.MaxFileSizeKB)
	}
	return nil
}
