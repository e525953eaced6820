// Package config provides Viper-based configuration loading for the pair finder.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// Rotation policy values for GeneratorConfig.AllowRotation.
const (
	RotationInherit = "inherit"
	RotationAllow   = "allow"
	RotationDeny    = "deny"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GeneratorConfig holds the inputs of a single pair-finding run.
type GeneratorConfig struct {
	// Seed seeds the random source. 0 draws a fresh seed from crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// UpAxis is the world up vector as [x, y, z].
	UpAxis []float64 `mapstructure:"up_axis"`
	// AllowRotation is the global rotation override: "inherit", "allow", or "deny".
	AllowRotation string `mapstructure:"allow_rotation"`
	// MaxPairs caps the returned queue. -1 returns every pair.
	MaxPairs int `mapstructure:"max_pairs"`
	// MainPath reports whether the next tile is placed on the main path.
	MainPath bool `mapstructure:"main_path"`
	// NormalizedDepth is the next tile's depth along its path, in [0, 1].
	NormalizedDepth float64 `mapstructure:"normalized_depth"`
	// ScriptInstructionLimit is the per-call opcode budget for admission scripts.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// RotationOverride maps AllowRotation onto the finder's tri-state flag.
//
// Postcondition: Returns nil for "inherit", otherwise a pointer to true or false.
func (g GeneratorConfig) RotationOverride() *bool {
	var v bool
	switch g.AllowRotation {
	case RotationAllow:
		v = true
	case RotationDeny:
		v = false
	default:
		return nil
	}
	return &v
}

// ContentConfig locates the YAML and Lua content a run loads.
type ContentConfig struct {
	TilesDir           string `mapstructure:"tiles_dir"`
	SocketsFile        string `mapstructure:"sockets_file"`
	TileSetsDir        string `mapstructure:"tilesets_dir"`
	ArchetypesDir      string `mapstructure:"archetypes_dir"`
	AdmissionScriptDir string `mapstructure:"admission_script_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Content   ContentConfig   `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGenerator(c.Generator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGenerator(g GeneratorConfig) error {
	var errs []string
	if len(g.UpAxis) != 3 {
		errs = append(errs, fmt.Sprintf("generator.up_axis must have 3 components, got %d", len(g.UpAxis)))
	} else if g.UpAxis[0] == 0 && g.UpAxis[1] == 0 && g.UpAxis[2] == 0 {
		errs = append(errs, "generator.up_axis must not be the zero vector")
	}
	validRotation := map[string]bool{RotationInherit: true, RotationAllow: true, RotationDeny: true}
	if !validRotation[g.AllowRotation] {
		errs = append(errs, fmt.Sprintf("generator.allow_rotation must be one of [inherit, allow, deny], got %q", g.AllowRotation))
	}
	if g.MaxPairs < -1 {
		errs = append(errs, fmt.Sprintf("generator.max_pairs must be >= -1, got %d", g.MaxPairs))
	}
	if math.IsNaN(g.NormalizedDepth) || g.NormalizedDepth < 0 || g.NormalizedDepth > 1 {
		errs = append(errs, fmt.Sprintf("generator.normalized_depth must be in [0, 1], got %v", g.NormalizedDepth))
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("generator.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.TilesDir == "" {
		errs = append(errs, "content.tiles_dir must not be empty")
	}
	if c.TileSetsDir == "" {
		errs = append(errs, "content.tilesets_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TILEGROW_ prefix
	v.SetEnvPrefix("TILEGROW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewViper returns a Viper instance carrying the defaults and the
// TILEGROW_ environment binding, without a config file.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TILEGROW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.up_axis", []float64{0, 1, 0})
	v.SetDefault("generator.allow_rotation", RotationInherit)
	v.SetDefault("generator.max_pairs", -1)
	v.SetDefault("generator.main_path", true)
	v.SetDefault("generator.normalized_depth", 0.0)
	v.SetDefault("generator.script_instruction_limit", 100000)

	v.SetDefault("content.tiles_dir", "content/tiles")
	v.SetDefault("content.sockets_file", "")
	v.SetDefault("content.tilesets_dir", "content/tilesets")
	v.SetDefault("content.archetypes_dir", "")
	v.SetDefault("content.admission_script_dir", "")
}
