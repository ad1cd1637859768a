// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Engine     EngineConfig     `mapstructure:"engine" yaml:"engine"`
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// EngineConfig configures the candidate scoring engine.
type EngineConfig struct {
	// WorkerConcurrency caps how many candidates are scored in parallel.
	WorkerConcurrency int `mapstructure:"worker_concurrency" yaml:"worker_concurrency"`
}

// GenerationConfig tunes the candidate generators.
type GenerationConfig struct {
	// Seed drives every random decision in a pipeline run. Zero means
	// derive one from the clock; any other value makes runs replayable.
	Seed            int64 `mapstructure:"seed" yaml:"seed"`
	StepsPerBar     int   `mapstructure:"steps_per_bar" yaml:"steps_per_bar"`
	GrooveCount     int   `mapstructure:"groove_count" yaml:"groove_count"`
	MotifTopN       int   `mapstructure:"motif_top_n" yaml:"motif_top_n"`
	VariationPasses int   `mapstructure:"variation_passes" yaml:"variation_passes"`
}

// OutputConfig controls where the arrangement artifact lands.
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "arranger-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Engine --
	v.SetDefault("engine.worker_concurrency", 8)

	// -- Generation --
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.steps_per_bar", 16)
	v.SetDefault("generation.groove_count", 6)
	v.SetDefault("generation.motif_top_n", 8)
	v.SetDefault("generation.variation_passes", 1)

	// -- Output --
	v.SetDefault("output.path", "")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", true)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Engine.WorkerConcurrency <= 0 {
		return fmt.Errorf("engine.worker_concurrency must be positive, got %d", c.Engine.WorkerConcurrency)
	}
	if c.Generation.StepsPerBar <= 0 || c.Generation.StepsPerBar%4 != 0 {
		return fmt.Errorf("generation.steps_per_bar must be a positive multiple of 4, got %d", c.Generation.StepsPerBar)
	}
	if c.Generation.GrooveCount <= 0 {
		return fmt.Errorf("generation.groove_count must be positive, got %d", c.Generation.GrooveCount)
	}
	if c.Generation.MotifTopN <= 0 {
		return fmt.Errorf("generation.motif_top_n must be positive, got %d", c.Generation.MotifTopN)
	}
	if c.Generation.VariationPasses < 0 {
		return fmt.Errorf("generation.variation_passes must not be negative, got %d", c.Generation.VariationPasses)
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("output.format must be json or yaml, got %q", c.Output.Format)
	}
	return nil
}
