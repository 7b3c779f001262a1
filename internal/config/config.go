package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the project root.
const DefaultConfigFile = "gflmod.yaml"

// Config holds all gflmod configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Project is the mod project root; every relative path below resolves against it.
	Project string `yaml:"project"`

	// Input and output locations inside the mod directory
	Paths PathsConfig `yaml:"paths"`

	// Voice manifest validation
	Voice VoiceConfig `yaml:"voice"`

	// Radio effect defaults for voice processing
	Effect EffectConfig `yaml:"effect"`

	// Markup formatting
	Format FormatConfig `yaml:"format"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// FormatConfig configures the markup formatter.
type FormatConfig struct {
	Pattern  string `yaml:"pattern"`   // doublestar glob relative to the mod dir
	TabWidth int    `yaml:"tab_width"` // spaces per tab
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "gflmod",
		Version: "1.0.0",
		Project: ".",

		Paths: PathsConfig{
			ModDir:             "mod",
			UnitFile:           "units/gfl_unit.xml",
			UnitGirlOutput:     "units/gfl_unit_girl.xml",
			EntitiesFile:       "entities/gfl_humans.xml",
			EntitiesGirlOutput: "entities/gfl_humans_girl.xml",
			DeployOutput:       "gui/gfl_deploy.xml",
			DeployGirlOutput:   "gui/gfl_deploy_girl.xml",
			SoundsDir:          "sounds",
			VoiceDir:           "sounds/voice",
		},

		Voice: VoiceConfig{
			ManifestPattern: "gfl_voice_lines_*.xml",
			LogicalRoot:     "data/",
			MaxPathLength:   124,
		},

		Effect: EffectConfig{
			HighpassHz: 100,
			LowpassHz:  6000,
			MidBoostHz: 1200,
			MidBoostDB: 1,
			BoostQ:     0.5,
		},

		Format: FormatConfig{
			Pattern:  "**/*.xml",
			TabWidth: 4,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("GFLMOD_PROJECT"); dir != "" {
		c.Project = dir
	}
	if dir := os.Getenv("GFLMOD_MOD_DIR"); dir != "" {
		c.Paths.ModDir = dir
	}
	if level := os.Getenv("GFLMOD_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.ModDir) == "" {
		return fmt.Errorf("paths.mod_dir must not be empty")
	}
	if c.Voice.MaxPathLength <= 0 {
		return fmt.Errorf("voice.max_path_length must be positive, got %d", c.Voice.MaxPathLength)
	}
	if c.Voice.LogicalRoot == "" {
		return fmt.Errorf("voice.logical_root must not be empty")
	}
	if err := c.Effect.Validate(); err != nil {
		return err
	}
	if c.Format.TabWidth <= 0 {
		return fmt.Errorf("format.tab_width must be positive, got %d", c.Format.TabWidth)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
