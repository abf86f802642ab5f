package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/cavediver/internal/entity"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	// Level is a level id from levels.json, or LevelGenerated.
	Level string `yaml:"level"`

	// TickMS is the longest the loop waits for input before advancing.
	TickMS int `yaml:"tick_ms"`

	AI AIConfig `yaml:"ai"`

	// DebugAddr enables the debug HTTP server when set, e.g. "localhost:6061".
	DebugAddr string `yaml:"debug_addr"`

	LogFile      string `yaml:"log_file"`
	LogVerbosity int    `yaml:"log_verbosity"`
}

// AIConfig tunes hostile agents.
type AIConfig struct {
	MoveCooldown int  `yaml:"move_cooldown"` // ticks between steps for agents that don't set one
	SearchBudget int  `yaml:"search_budget"` // max nodes expanded per path search, 0 = unbounded
	ShowPaths    bool `yaml:"show_paths"`

	// Exclude lists agent ids generated levels never spawn.
	Exclude []string `yaml:"exclude"`
}

// LevelGenerated selects a BSP generated level instead of a fixed one.
const LevelGenerated = "generated"

// Environment variables that override the config file.
const (
	EnvConfig    = "CAVEDIVER_CONFIG"
	EnvSeed      = "CAVEDIVER_SEED"
	EnvLevel     = "CAVEDIVER_LEVEL"
	EnvDebugAddr = "CAVEDIVER_DEBUG_ADDR"
)

// DefaultConfigFile is read when CAVEDIVER_CONFIG is unset.
const DefaultConfigFile = "cavediver.yaml"

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Level:  "glade",
		TickMS: 8,
		AI: AIConfig{
			MoveCooldown: entity.DefaultMoveCooldown,
			SearchBudget: 20000,
			ShowPaths:    true,
		},
		LogFile: "cavediver.log",
	}
}

// TickInterval returns TickMS as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Validate reports settings the game cannot run with.
func (c Config) Validate() error {
	if c.Level == "" {
		return errors.New("level must be set")
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMS)
	}
	if c.AI.MoveCooldown < 0 {
		return fmt.Errorf("ai.move_cooldown must not be negative, got %d", c.AI.MoveCooldown)
	}
	if c.AI.SearchBudget < 0 {
		return fmt.Errorf("ai.search_budget must not be negative, got %d", c.AI.SearchBudget)
	}
	return nil
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables read with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v := getenv(EnvLevel); v != "" {
		c.Level = v
	}
	if v := getenv(EnvDebugAddr); v != "" {
		c.DebugAddr = v
	}
	return nil
}

// Load resolves the full configuration: file named by CAVEDIVER_CONFIG (or
// cavediver.yaml), then environment overrides, then validation.
func Load() (Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultConfigFile
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
