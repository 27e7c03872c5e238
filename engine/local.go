package engine

import (
	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

type Option func(e *Local)

// Local plays a game between two agents in process. Agents are indexed black first.
type Local struct {
	board         *game.Board
	agents        [2]agent.Agent
	quietPlyLimit int
	maxPlies      int
	abort         func(plies int) bool
}

// WithQuietPlyLimit stops the game after limit plies without a capture. Zero disables the cutoff.
func WithQuietPlyLimit(limit int) Option {
	return func(e *Local) {
		if limit >= 0 {
			e.quietPlyLimit = limit
		}
	}
}

// WithMaxPlies stops the game after plies moves. Zero disables the cap.
func WithMaxPlies(plies int) Option {
	return func(e *Local) {
		if plies >= 0 {
			e.maxPlies = plies
		}
	}
}

// WithAbort is polled before every ply with the plies played so far; returning true stops the game
func WithAbort(abort func(plies int) bool) Option {
	return func(e *Local) {
		e.abort = abort
	}
}

func LocalEngine(agents [2]agent.Agent, board *game.Board, options ...Option) *Local {
	if agents[0] == nil || agents[1] == nil {
		panic("need an agent for each side")
	}
	if board == nil {
		board = game.NewBoard()
	}
	e := &Local{
		board:         board,
		agents:        agents,
		quietPlyLimit: meta.QUIET_PLY_LIMIT,
		maxPlies:      meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns the position the game is at
func (e *Local) Board() *game.Board {
	return e.board
}

// Run executes the game loop until a side cannot move or a cutoff fires.
// An agent picking an index outside the legal moves is asked again.
func (e *Local) Run() (Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	starting := e.board.Turn()
	log.Debug().Msgf("%s is starting", starting)

	plies, quiet := 0, 0
	var moveMetrics []metrics.MoveMetric
	var outcome Outcome
	for {
		if winner, over := e.board.IsTerminal(); over {
			outcome = Outcome{Winner: winner, Decisive: true, Reason: NoMoves}
			break
		}
		if e.quietPlyLimit > 0 && quiet >= e.quietPlyLimit {
			outcome.Reason = QuietPlies
			break
		}
		if e.maxPlies > 0 && plies >= e.maxPlies {
			outcome.Reason = MaxPlies
			break
		}
		if e.abort != nil && e.abort(plies) {
			outcome.Reason = Aborted
			break
		}

		mover := e.board.Turn()
		index, metric, err := e.agents[slot(mover)].FindMove(e.board.Clone())
		if err != nil {
			return Outcome{}, metrics.GameMetric{}, moveMetrics, fmt.Errorf("%s failed to find a move at ply %d: %w", mover, plies, err)
		}

		moves := e.board.LegalMoves()
		jump := index >= 0 && index < len(moves) && moves[index].IsJump()
		if !e.board.ApplyMove(index) {
			log.Warn().Msgf("%s picked move %d but only %d are legal, asking again", mover, index, len(moves))
			continue
		}

		plies++
		if jump {
			quiet = 0
		} else {
			quiet++
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          plies,
			Player:       mover.String(),
			SearchMetric: metric,
		})
	}

	outcome.Plies = plies
	if !outcome.Decisive {
		outcome.Winner = MaterialLeader(e.board)
	}
	log.Debug().Msgf("game over after %d plies (%s), winner: %s", plies, outcome.Reason, outcome.Winner)

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: starting.String(),
		Winner:         outcome.Winner.String(),
		Decisive:       outcome.Decisive,
		Reason:         string(outcome.Reason),
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalPlies:     plies,
	}
	return outcome, gameMetric, moveMetrics, nil
}

func slot(p game.Player) int {
	if p == game.Black {
		return 0
	}
	return 1
}
