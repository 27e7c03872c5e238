package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

// Reason tells why a game stopped
type Reason string

const (
	NoMoves    Reason = "no_moves"    // The side to move cannot move
	QuietPlies Reason = "quiet_plies" // Too many plies without a capture
	MaxPlies   Reason = "max_plies"
	Aborted    Reason = "aborted"
)

// Outcome of a game. A game stopped before a side ran out of moves is not decisive
// and names the side ahead on material as its winner.
type Outcome struct {
	Winner   game.Player
	Decisive bool
	Reason   Reason
	Plies    int
}

type Engine interface {
	// Run plays the game till one side cannot move or a cutoff stops it
	Run() (Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}

// MaterialLeader returns the side to move when it has strictly more pieces, else its opponent
func MaterialLeader(b *game.Board) game.Player {
	mover := b.Turn()
	if b.Count(mover) > b.Count(mover.Other()) {
		return mover
	}
	return mover.Other()
}
