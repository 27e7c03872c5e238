package metrics

import (
	"checkers/heuristic"
	"time"
)

// AgentConfig describes a search agent taking part in an experiment
type AgentConfig struct {
	Label    string           `json:"label"`
	Duration time.Duration    `json:"duration"`
	MaxDepth int              `json:"max_depth"`
	Params   heuristic.Params `json:"params"`
}
