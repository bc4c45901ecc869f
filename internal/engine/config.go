package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable of the rating engine. It is passed
// explicitly into each calculation; nothing in the engine reads ambient
// state.
type Config struct {
	Scale         string `yaml:"scale"`
	DefaultMethod string `yaml:"default_method"`

	DefaultWeights TrackWeights `yaml:"default_weights"`
	CriticalWeight float64      `yaml:"critical_weight"`

	GatingMode   string       `yaml:"gating_mode"`
	GatingScores GatingScores `yaml:"gating_scores"`

	Recency      RecencyRule        `yaml:"recency"`
	Completeness CompletenessPoints `yaml:"completeness"`

	ReviewAfterDays int `yaml:"review_after_days"`
	ExpireAfterDays int `yaml:"expire_after_days"`
	// FreshWithinDays controls when batch recalculation skips an employer
	// whose current rating is recent enough.
	FreshWithinDays int `yaml:"fresh_within_days"`
}

func Default() Config {
	return Config{
		Scale:           "four_point",
		DefaultMethod:   string(MethodWeightedAverage),
		DefaultWeights:  DefaultTrackWeights(),
		CriticalWeight:  0.25,
		GatingMode:      string(GatingBlend),
		GatingScores:    DefaultGatingScores(),
		Recency:         DefaultRecencyRule(),
		Completeness:    DefaultCompletenessPoints(),
		ReviewAfterDays: 90,
		ExpireAfterDays: 180,
		FreshWithinDays: 30,
	}
}

// Load overlays a YAML file onto the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseScale(c.Scale); err != nil {
		return err
	}
	if _, err := ParseMethod(c.DefaultMethod); err != nil {
		return err
	}
	if _, err := ParseGatingMode(c.GatingMode); err != nil {
		return err
	}
	if err := c.DefaultWeights.Validate(); err != nil {
		return err
	}
	if c.CriticalWeight < 0 || c.CriticalWeight > 1 {
		return &ValidationError{Field: "critical_weight", Reason: "must be within [0, 1]"}
	}
	return nil
}
