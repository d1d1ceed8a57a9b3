// Package config - YAML configuration for the detection pipeline.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/detect"
)

// Model points at the network files and declares its input shape.
type Model struct {
	ConfigPath  string `yaml:"config_path"`
	WeightsPath string `yaml:"weights_path"`
	InputWidth  int    `yaml:"input_width"`
	InputHeight int    `yaml:"input_height"`
}

// Detection holds the post-processing parameters.
type Detection struct {
	ScoreThreshold   float32  `yaml:"score_threshold"`
	OverlapThreshold float32  `yaml:"overlap_threshold"`
	Retain           []string `yaml:"retain"`
}

// Config is the full pipeline configuration.
type Config struct {
	Model     Model     `yaml:"model"`
	Detection Detection `yaml:"detection"`
}

// DefaultConfig returns a configuration with the standard thresholds and
// every catalog category retained.
func DefaultConfig() *Config {
	retain := make([]string, 0)
	for _, id := range categories.All() {
		retain = append(retain, id.String())
	}
	return &Config{
		Model: Model{
			InputWidth:  416,
			InputHeight: 416,
		},
		Detection: Detection{
			ScoreThreshold:   detect.DefaultScoreThreshold,
			OverlapThreshold: detect.DefaultOverlapThreshold,
			Retain:           retain,
		},
	}
}

// Load reads and validates a YAML configuration file. Omitted detection
// fields fall back to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks thresholds and category names.
func (c *Config) Validate() error {
	if c.Detection.ScoreThreshold < 0 || c.Detection.ScoreThreshold > 1 {
		return errors.Errorf("score_threshold %f outside [0,1]", c.Detection.ScoreThreshold)
	}
	if c.Detection.OverlapThreshold < 0 || c.Detection.OverlapThreshold > 1 {
		return errors.Errorf("overlap_threshold %f outside [0,1]", c.Detection.OverlapThreshold)
	}
	if len(c.Detection.Retain) == 0 {
		return errors.New("retain list is empty")
	}
	if _, err := c.RetainIDs(); err != nil {
		return err
	}
	return nil
}

// RetainIDs resolves the retained category names to catalog IDs, in the
// order they appear in the config.
func (c *Config) RetainIDs() ([]categories.ID, error) {
	ids := make([]categories.ID, 0, len(c.Detection.Retain))
	for _, name := range c.Detection.Retain {
		id, err := categories.Parse(name)
		if err != nil {
			return nil, errors.Wrap(err, "retain list")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
