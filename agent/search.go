package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
)

type searchAgent struct {
	ab *searcher.AlphaBeta
}

// NewSearchAgent returns an agent that plays the moves chosen by ab
func NewSearchAgent(ab *searcher.AlphaBeta) Agent {
	return searchAgent{ab: ab}
}

func (a searchAgent) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	move, metric := a.ab.Search(b)
	return move, metric, nil
}
