package meta

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the run file shared by the entry points. Zero fields keep their defaults.
type Config struct {
	MoveDuration  time.Duration `yaml:"move_duration"`
	MaxDepth      int           `yaml:"max_depth"`
	Siblings      int           `yaml:"siblings"`
	Generations   int           `yaml:"generations"`
	QuietPlyLimit int           `yaml:"quiet_ply_limit"`
	MaxPlies      int           `yaml:"max_plies"`
	Games         int           `yaml:"games"`
	Seed          uint64        `yaml:"seed"`
	Params        string        `yaml:"params"` // Weights to start from
	Output        string        `yaml:"output"` // Directory for metrics
}

func DefaultConfig() Config {
	return Config{
		MoveDuration:  TRAIN_MOVE_DURATION,
		Siblings:      SIBLINGS,
		Generations:   GENERATIONS,
		QuietPlyLimit: QUIET_PLY_LIMIT,
		MaxPlies:      MAX_PLIES,
		Games:         MATCHUP_GAMES,
		Output:        "results",
	}
}

// LoadConfig reads a YAML run file on top of the defaults
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.Siblings < 1 {
		return config, fmt.Errorf("config %s: siblings must be positive, got %d", path, config.Siblings)
	}
	return config, nil
}
