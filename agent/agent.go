package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

type Agent interface {
	// FindMove returns an index into b.LegalMoves() and the search metrics (if collected)
	FindMove(b *game.Board) (int, metrics.SearchMetric, error)
}
