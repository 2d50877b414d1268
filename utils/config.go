package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Seed                uint64        `json:"seed"` // 0 seeds from the clock
	Rule                string        `json:"rule"`
	Pattern             string        `json:"pattern"` // optional board file replacing random seeding
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Rule:                rules.Conway.String(),
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks ranges and returns the parsed rule
func (c Config) Validate() (rules.Rule, error) {
	if c.Width < 1 || c.Height < 1 {
		return rules.Rule{}, errors.Wrapf(ErrInvalidConfig, "[Validate] grid %dx%d", c.Width, c.Height)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return rules.Rule{}, errors.Wrapf(ErrInvalidConfig, "[Validate] random_density %v not in [0, 1]", c.RandomDensity)
	}
	if c.FrameRate < 0 || c.MaxGenerations < 0 || c.InjectionCount < 0 || c.StagnationThreshold < 0 {
		return rules.Rule{}, errors.Wrap(ErrInvalidConfig, "[Validate] negative frame_rate, max_generations, injection_count or stagnation_threshold")
	}
	rule, err := rules.Parse(c.Rule)
	if err != nil {
		return rules.Rule{}, errors.Wrapf(ErrInvalidConfig, "[Validate] %v", err)
	}
	return rule, nil
}
