package engine

import (
	"checkers/agent"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted plays the given indices in order, then always the first legal move
type scripted struct {
	moves []int
	calls int
	err   error
}

func (s *scripted) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	if s.err != nil {
		return 0, metrics.SearchMetric{}, s.err
	}
	defer func() { s.calls++ }()
	if s.calls < len(s.moves) {
		return s.moves[s.calls], metrics.SearchMetric{}, nil
	}
	return 0, metrics.SearchMetric{}, nil
}

func layout(t *testing.T, layout string) *game.Board {
	t.Helper()
	b, err := game.ParseLayout(layout)
	require.NoError(t, err)
	return b
}

const lastRedPiece = `........
........
..b.....
...r....
........
........
........
........
black`

func TestRun(t *testing.T) {
	t.Run("asks again after an out of range index", func(t *testing.T) {
		black := &scripted{moves: []int{99, -1, 0}}
		e := LocalEngine([2]agent.Agent{black, &scripted{}}, layout(t, lastRedPiece))

		outcome, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, 3, black.calls)
		require.Equal(t, Outcome{Winner: game.Black, Decisive: true, Reason: NoMoves, Plies: 1}, outcome)
		require.Equal(t, "black", gameMetric.Winner)
		require.Equal(t, 1, gameMetric.TotalPlies)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "black", moveMetrics[0].Player)
	})

	t.Run("quiet plies give the game to the material leader", func(t *testing.T) {
		e := LocalEngine([2]agent.Agent{&scripted{}, &scripted{}}, game.NewBoard(), WithQuietPlyLimit(2))

		outcome, gameMetric, _, err := e.Run()

		require.NoError(t, err)
		// Material is level, so the side to move does not lead and its opponent is named
		require.Equal(t, game.Black, e.Board().Turn())
		require.Equal(t, Outcome{Winner: game.Red, Decisive: false, Reason: QuietPlies, Plies: 2}, outcome)
		require.Equal(t, "quiet_plies", gameMetric.Reason)
		require.False(t, gameMetric.Decisive)
	})

	t.Run("abort names the side to move when it leads", func(t *testing.T) {
		b := layout(t, `........
........
..b.b...
........
........
........
....r...
........
black`)
		var polled []int
		abort := func(plies int) bool {
			polled = append(polled, plies)
			return plies == 1
		}
		e := LocalEngine([2]agent.Agent{&scripted{}, &scripted{}}, b, WithAbort(abort))

		outcome, _, _, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, []int{0, 1}, polled)
		require.Equal(t, Aborted, outcome.Reason)
		require.Equal(t, game.Red, e.Board().Turn())
		require.Equal(t, game.Black, outcome.Winner, "Red to move has fewer pieces")
	})

	t.Run("stops at the ply cap", func(t *testing.T) {
		var e Engine = LocalEngine([2]agent.Agent{&scripted{}, &scripted{}}, nil, WithMaxPlies(3), WithQuietPlyLimit(0))

		outcome, _, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, MaxPlies, outcome.Reason)
		require.Equal(t, 3, outcome.Plies)
		require.Len(t, moveMetrics, 3)
	})

	t.Run("returns agent errors", func(t *testing.T) {
		failure := errors.New("no input")
		e := LocalEngine([2]agent.Agent{&scripted{err: failure}, &scripted{}}, nil)

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, failure)
	})

	t.Run("search agents finish a game", func(t *testing.T) {
		ab := searcher.NewAlphaBeta(searcher.WithMaxDepth(2), searcher.WithMetrics())
		a := agent.NewSearchAgent(ab)
		e := LocalEngine([2]agent.Agent{a, a}, nil, WithMaxPlies(40))

		outcome, _, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, outcome.Plies, len(moveMetrics))
		for _, m := range moveMetrics {
			if m.Outcome != "single_move" {
				require.Positive(t, m.Depth)
			}
		}
	})

	t.Run("needs two agents", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine([2]agent.Agent{&scripted{}, nil}, nil) })
	})
}

func TestMaterialLeader(t *testing.T) {
	b := layout(t, lastRedPiece)
	require.Equal(t, game.Red, MaterialLeader(b), "Level material goes to the side not moving")

	b = layout(t, lastRedPiece[:len(lastRedPiece)-len("black")]+"red")
	require.Equal(t, game.Black, MaterialLeader(b))
}
