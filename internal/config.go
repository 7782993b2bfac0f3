package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable pipeline parameters. The drift tolerance and the
// anchor cadence of real captures are undocumented firmware behavior, so both
// stay configurable instead of baked in.
type Config struct {
	// DriftToleranceSeconds is the maximum disagreement between an anchor
	// timestamp and the extrapolated sample time before the reconstructor
	// resynchronizes to the anchor. Zero means "2x the nominal sample
	// interval" per sensor.
	DriftToleranceSeconds float64 `yaml:"drift_tolerance_seconds"`

	// SampleRates overrides the nominal per-sensor rates in Hz, keyed by
	// sensor name ("eeg", "imu", "ppg", "hr", "spo2").
	SampleRates map[string]float64 `yaml:"sample_rates,omitempty"`

	// KeepIntermediate keeps the decompressed raw buffers on disk under
	// WorkDir for debugging. Correctness never depends on it.
	KeepIntermediate bool   `yaml:"keep_intermediate"`
	WorkDir          string `yaml:"work_dir,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads a YAML config file. A missing path is not an error; the
// defaults apply.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DriftToleranceSeconds < 0 {
		return fmt.Errorf("drift_tolerance_seconds must be >= 0")
	}
	for name, rate := range c.SampleRates {
		if _, err := ParseKind(name); err != nil {
			return err
		}
		if rate <= 0 {
			return fmt.Errorf("sample rate for %s must be > 0, got %v", name, rate)
		}
	}
	return nil
}

// RateFor returns the effective sample rate for a sensor kind.
func (c *Config) RateFor(kind Kind) float64 {
	if rate, ok := c.SampleRates[kind.String()]; ok && rate > 0 {
		return rate
	}
	return kind.NominalRate()
}

// IntervalFor returns the effective nominal sample interval in seconds.
func (c *Config) IntervalFor(kind Kind) float64 {
	return 1 / c.RateFor(kind)
}

// ToleranceFor returns the effective drift tolerance in seconds.
func (c *Config) ToleranceFor(kind Kind) float64 {
	if c.DriftToleranceSeconds > 0 {
		return c.DriftToleranceSeconds
	}
	return 2 * c.IntervalFor(kind)
}
