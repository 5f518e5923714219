// Package config loads tool settings from defaults, an optional config file,
// a .env file and TVM_-prefixed environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/meenmo/timevalue/irr"
)

// EnvPrefix is prepended to every environment override, e.g.
// TVM_SOLVER_TOLERANCE.
const EnvPrefix = "TVM"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Solver SolverConfig `mapstructure:"solver"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// SolverConfig mirrors irr.Config in a flat, file-friendly shape.
type SolverConfig struct {
	// Tolerance is the NPV (and bracket half-width) accepted as converged.
	Tolerance float64 `mapstructure:"tolerance"`

	// MaxIterations bounds bisection steps per solve.
	MaxIterations int `mapstructure:"max_iterations"`

	BracketLow  float64 `mapstructure:"bracket_low"`
	BracketHigh float64 `mapstructure:"bracket_high"`

	// SearchLimit bounds bracket expansion when solving from a guess.
	SearchLimit int `mapstructure:"search_limit"`
}

// IRR converts the settings into a solver configuration.
func (s SolverConfig) IRR() irr.Config {
	return irr.Config{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
		Bracket:       irr.Bracket{Low: s.BracketLow, High: s.BracketHigh},
	}
}

// Load reads configuration. An empty path searches for tvm.{yaml,toml,json}
// in ./configs and the working directory and tolerates its absence; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tvm")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the solver settings.
func (c *Config) Validate() error {
	if err := c.Solver.IRR().Validate(); err != nil {
		return fmt.Errorf("solver config: %w", err)
	}
	if c.Solver.SearchLimit <= 0 {
		return fmt.Errorf("solver config: %w: search_limit must be positive, got %d",
			irr.ErrInvalidConfig, c.Solver.SearchLimit)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("solver.tolerance", irr.DefaultConfig.Tolerance)
	v.SetDefault("solver.max_iterations", irr.DefaultConfig.MaxIterations)
	v.SetDefault("solver.bracket_low", irr.DefaultConfig.Bracket.Low)
	v.SetDefault("solver.bracket_high", irr.DefaultConfig.Bracket.High)
	v.SetDefault("solver.search_limit", irr.DefaultSearchLimit)
}
