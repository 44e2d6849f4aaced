// SPDX-License-Identifier: MIT

// Package config loads and validates the kxmatch YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kxmatch/engine"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the top-level configuration.
type Config struct {
	Model    string         `yaml:"model" validate:"oneof=assignment exchange"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Timeout  time.Duration  `yaml:"timeout" validate:"gte=0"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
}

// ExchangeConfig controls the pairwise exchange model.
type ExchangeConfig struct {
	ModifiedAverage         bool `yaml:"modified_average"`
	DropAsymmetricZeroEdges bool `yaml:"drop_asymmetric_zero_edges"`
	MaxCardinality          bool `yaml:"max_cardinality"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=csv json text"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Model:    engine.Exchange.String(),
		Exchange: ExchangeConfig{MaxCardinality: true},
		Timeout:  30 * time.Second,
		Log:      LogConfig{Level: "info"},
		Output:   OutputConfig{Format: "csv"},
	}
}

// Load reads a config file from path over the defaults and validates it.
// A missing file, or an empty path, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// EngineConfig converts c into an engine request configuration.
func (c *Config) EngineConfig() (engine.Config, error) {
	model, err := engine.ParseModel(c.Model)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		Model:                   model,
		UseModifiedAverage:      c.Exchange.ModifiedAverage,
		DropAsymmetricZeroEdges: c.Exchange.DropAsymmetricZeroEdges,
		MaxCardinality:          c.Exchange.MaxCardinality,
	}, nil
}
