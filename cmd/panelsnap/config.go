package main

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/format"
	"github.com/marcozanotti/utilsforecast/internal/logging"
	"github.com/marcozanotti/utilsforecast/snapshot"
	"github.com/marcozanotti/utilsforecast/synth"
)

// envPrefix prefixes every environment variable, e.g. PANEL_SERIES.
const envPrefix = "PANEL"

// Config drives one panelsnap run.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Logging   logging.Config  `yaml:"logging"`
}

// GeneratorConfig describes the synthetic panel.
type GeneratorConfig struct {
	Series     int    `yaml:"series" envconfig:"SERIES"`
	Freq       string `yaml:"freq" envconfig:"FREQ"`
	MinLength  int    `yaml:"min_length" envconfig:"MIN_LENGTH"`
	MaxLength  int    `yaml:"max_length" envconfig:"MAX_LENGTH"`
	Statics    int    `yaml:"static_features" envconfig:"STATIC_FEATURES"`
	EqualEnds  bool   `yaml:"equal_ends" envconfig:"EQUAL_ENDS"`
	Trend      bool   `yaml:"trend" envconfig:"TREND"`
	Seed       uint64 `yaml:"seed" envconfig:"SEED"`
	Engine     string `yaml:"engine" envconfig:"ENGINE"`
	NumericIDs bool   `yaml:"numeric_ids" envconfig:"NUMERIC_IDS"`
}

// SnapshotConfig describes the output file.
type SnapshotConfig struct {
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	Compression string `yaml:"compression" envconfig:"COMPRESSION"`
	Encoding    string `yaml:"encoding" envconfig:"ENCODING"`
	BigEndian   bool   `yaml:"big_endian" envconfig:"BIG_ENDIAN"`
}

// DefaultConfig returns the values used when neither the file nor the
// environment set a field.
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			Series:    100,
			Freq:      "D",
			MinLength: 50,
			MaxLength: 500,
			Engine:    "frame",
		},
		Snapshot: SnapshotConfig{
			Output:      "panel.ufsn",
			Compression: "zstd",
			Encoding:    "raw",
		},
		Logging: logging.DefaultConfig(),
	}
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path when
// path is not empty, then overlays PANEL_* environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Unset variables leave the field untouched, so file values survive.
	if err := envconfig.Process(envPrefix, &cfg.Generator); err != nil {
		return nil, fmt.Errorf("failed to load generator config from env: %w", err)
	}
	if err := envconfig.Process(envPrefix, &cfg.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to load snapshot config from env: %w", err)
	}
	if err := envconfig.Process(envPrefix, &cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to load logging config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Generator.Series < 0 {
		return fmt.Errorf("%w: series must be >= 0, got %d", errs.ErrInvalidOption, c.Generator.Series)
	}
	if _, err := c.engine(); err != nil {
		return err
	}
	if c.Snapshot.Output == "" {
		return fmt.Errorf("%w: empty output path", errs.ErrInvalidOption)
	}
	if _, err := c.snapshotOptions(); err != nil {
		return err
	}

	return nil
}

func (c *Config) engine() (synth.Engine, error) {
	switch c.Generator.Engine {
	case "", "frame":
		return synth.EngineFrame, nil
	case "arrow":
		return synth.EngineArrow, nil
	default:
		return 0, fmt.Errorf("%w: engine %q", errs.ErrInvalidOption, c.Generator.Engine)
	}
}

func (c *Config) generatorOptions() ([]synth.Option, error) {
	engine, err := c.engine()
	if err != nil {
		return nil, err
	}

	opts := []synth.Option{
		synth.WithFreq(c.Generator.Freq),
		synth.WithLengths(c.Generator.MinLength, c.Generator.MaxLength),
		synth.WithStaticFeatures(c.Generator.Statics),
		synth.WithSeed(c.Generator.Seed),
		synth.WithEngine(engine),
		synth.WithStaticAsCategorical(!c.Generator.NumericIDs),
	}
	if c.Generator.EqualEnds {
		opts = append(opts, synth.WithEqualEnds())
	}
	if c.Generator.Trend {
		opts = append(opts, synth.WithTrend())
	}

	return opts, nil
}

func (c *Config) snapshotOptions() ([]snapshot.Option, error) {
	comp, ok := format.ParseCompression(c.Snapshot.Compression)
	if !ok {
		return nil, fmt.Errorf("%w: compression %q", errs.ErrInvalidOption, c.Snapshot.Compression)
	}
	enc, ok := format.ParseEncoding(c.Snapshot.Encoding)
	if !ok {
		return nil, fmt.Errorf("%w: encoding %q", errs.ErrInvalidOption, c.Snapshot.Encoding)
	}

	opts := []snapshot.Option{
		snapshot.WithCompression(comp),
		snapshot.WithValueEncoding(enc),
	}
	if c.Snapshot.BigEndian {
		opts = append(opts, snapshot.WithBigEndian())
	}

	return opts, nil
}
