package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/textlife/model"
)

// Config holds the configuration for the game
type Config struct {
	BoardFile           string        `json:"board_file" yaml:"board_file"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	StopWhenStable      bool          `json:"stop_when_stable" yaml:"stop_when_stable"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	UseParallel         bool          `json:"use_parallel" yaml:"use_parallel"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool"`
	UseBoundedGrid      bool          `json:"use_bounded_grid" yaml:"use_bounded_grid"`
	ClearScreen         bool          `json:"clear_screen" yaml:"clear_screen"`
	Interactive         bool          `json:"interactive" yaml:"interactive"`
	Glyphs              model.Glyphs  `json:"glyphs" yaml:"glyphs"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		BoardFile:           "boards/glider.txt",
		FrameRate:           300 * time.Millisecond,
		MaxGenerations:      0, // run until the board empties
		StopWhenStable:      false,
		StagnationThreshold: 5,
		UseParallel:         false,
		UseMemoryPool:       true,
		UseBoundedGrid:      false,
		ClearScreen:         true,
		Interactive:         true,
		Glyphs:              model.Glyphs{Alive: "1", Dead: "-", Separator: " "},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Fields missing from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate rejects settings the driver loop cannot run with
func (c Config) Validate() error {
	if c.FrameRate < 0 {
		return errors.Errorf("frame_rate must not be negative, got %v", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("max_generations must not be negative, got %d", c.MaxGenerations)
	}
	if c.StopWhenStable && c.StagnationThreshold <= 0 {
		return errors.Errorf("stagnation_threshold must be positive when stop_when_stable is set, got %d", c.StagnationThreshold)
	}
	if c.Glyphs.Alive != "" && c.Glyphs.Alive == c.Glyphs.Dead {
		return errors.Errorf("alive and dead glyphs must differ, both are %q", c.Glyphs.Alive)
	}
	return nil
}
