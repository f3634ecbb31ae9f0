// Package config loads the application configuration from a YAML file,
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/SUCA-Team/SUCA-api/internal/fsrs"
)

// envPrefix namespaces environment variables, e.g. SUCA_DB_PATH.
// A double underscore separates nesting levels:
// SUCA_SCHEDULER__REQUEST_RETENTION maps to scheduler.request_retention.
const envPrefix = "SUCA_"

// Config is the full application configuration.
type Config struct {
	DBPath    string    `koanf:"db_path" validate:"required"`
	ReposDir  string    `koanf:"repos_dir" validate:"required"`
	Scheduler Scheduler `koanf:"scheduler"`
}

// Scheduler configures the review scheduler. Weights may be omitted to
// use the stock model weights; when given, the full vector is required.
type Scheduler struct {
	Weights          []float64 `koanf:"weights" validate:"omitempty,len=17"`
	RequestRetention float64   `koanf:"request_retention" validate:"gt=0,lte=1"`
	MaximumInterval  int       `koanf:"maximum_interval" validate:"gte=1"`
	EnableFuzz       bool      `koanf:"enable_fuzz"`
	FuzzSeed         *int64    `koanf:"fuzz_seed"`
}

// Default returns the configuration used when no file, environment
// variable or flag overrides a setting.
func Default() Config {
	p := fsrs.DefaultParams()
	return Config{
		DBPath:   "suca.db",
		ReposDir: "repos",
		Scheduler: Scheduler{
			RequestRetention: p.RequestRetention,
			MaximumInterval:  p.MaximumInterval,
			EnableFuzz:       p.EnableFuzz,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when missing), then SUCA_* environment variables, then the
// given flag set. The result is validated before being returned.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// --db-path sets db_path, --scheduler.enable-fuzz sets
			// scheduler.enable_fuzz.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return Config{}, fmt.Errorf("loading flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks field constraints and the scheduler parameters as a
// whole, so a bad weight vector is rejected at startup rather than at
// the first review.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return c.Params().Validate()
}

// Params converts the scheduler section into engine parameters.
func (c Config) Params() fsrs.Params {
	p := fsrs.DefaultParams()
	p.RequestRetention = c.Scheduler.RequestRetention
	p.MaximumInterval = c.Scheduler.MaximumInterval
	p.EnableFuzz = c.Scheduler.EnableFuzz
	if len(c.Scheduler.Weights) == fsrs.WeightCount {
		copy(p.Weights[:], c.Scheduler.Weights)
	}
	return p
}
