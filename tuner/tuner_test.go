package tuner

import (
	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/heuristic"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type panicky struct{}

func (panicky) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	panic("evaluation blew up")
}

// quick plays at depth one with no time limit so games are deterministic
func quick(options ...Option) *Tuner {
	defaults := []Option{WithMoveDuration(0), WithMaxDepth(1), WithSeed(7), WithLogger(zerolog.Nop())}
	return New(append(defaults, options...)...)
}

// Black captures the last red piece on its first move
func oneMoveWin(t *testing.T) *game.Board {
	t.Helper()
	b, err := game.ParseLayout("........\n........\n..b.....\n...r....\n........\n........\n........\n........\nblack")
	require.NoError(t, err)
	return b
}

func TestRunGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("identical siblings tie and keep the baseline", func(t *testing.T) {
		tuner := quick(WithMutation(false), WithMaxPlies(4))

		gen, err := tuner.RunGeneration(ctx, heuristic.Default(), 2)

		require.NoError(t, err)
		require.Len(t, gen.Siblings, 2)
		for _, r := range gen.Siblings {
			require.Equal(t, MaxFitness, r.Fitness)
			require.Equal(t, heuristic.Default(), r.Challenger)
		}
		require.Equal(t, -1, gen.Selected)
		require.Equal(t, MaxFitness, gen.Fitness)
		require.Equal(t, heuristic.Default(), gen.Params)
	})

	t.Run("sides alternate across siblings", func(t *testing.T) {
		tuner := quick(WithMaxPlies(2))

		gen, err := tuner.RunGeneration(ctx, heuristic.Default(), 4)

		require.NoError(t, err)
		for i, r := range gen.Siblings {
			require.Equal(t, i, r.Sibling)
			if i%2 == 0 {
				require.Equal(t, game.Black, r.ChallengerSide)
			} else {
				require.Equal(t, game.Red, r.ChallengerSide)
			}
		}
	})

	t.Run("mutations are seeded per sibling", func(t *testing.T) {
		tuner := quick(WithSeed(42), WithMaxPlies(1))

		gen, err := tuner.RunGeneration(ctx, heuristic.Default(), 3)

		require.NoError(t, err)
		for i, r := range gen.Siblings {
			want := heuristic.Default().Mutate(rand.New(rand.NewSource(42 + uint64(i))))
			require.Equal(t, want, r.Challenger)
		}
	})

	t.Run("decisive win is selected", func(t *testing.T) {
		tuner := quick(WithStartingBoard(oneMoveWin(t)))

		gen, err := tuner.RunGeneration(ctx, heuristic.Default(), 1)

		require.NoError(t, err)
		require.Equal(t, 1, gen.Fitness)
		require.Equal(t, 0, gen.Selected)
		require.Equal(t, gen.Siblings[0].Challenger, gen.Params, "The challenger played black and won")
		require.True(t, gen.Siblings[0].Outcome.Decisive)
	})

	t.Run("winning baseline is credited", func(t *testing.T) {
		tuner := quick(WithStartingBoard(oneMoveWin(t)))

		gen, err := tuner.RunGeneration(ctx, heuristic.Default(), 2)

		require.NoError(t, err)
		require.Equal(t, 1, gen.Fitness)
		winners := 0
		for _, r := range gen.Siblings {
			if r.Fitness == 1 {
				winners++
			}
		}
		// The slower sibling may be abandoned once the other reports a one ply win
		require.GreaterOrEqual(t, winners, 1)
		if gen.Selected == 1 {
			require.Equal(t, heuristic.Default(), gen.Params)
		}
	})

	t.Run("panicking sibling fails the generation", func(t *testing.T) {
		tuner := quick()
		tuner.newAgent = func(p heuristic.Params) agent.Agent { return panicky{} }

		_, err := tuner.RunGeneration(ctx, heuristic.Default(), 3)

		require.ErrorContains(t, err, "panicked")
	})

	t.Run("cancelled context stops the generation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := quick().RunGeneration(cancelled, heuristic.Default(), 2)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("needs a sibling", func(t *testing.T) {
		_, err := quick().RunGeneration(ctx, heuristic.Default(), 0)
		require.Error(t, err)
	})
}

func TestPlaySibling(t *testing.T) {
	ctx := context.Background()

	t.Run("abandons a game that cannot beat the best", func(t *testing.T) {
		best := newBest()
		best.offer(3)

		r, err := quick().playSibling(ctx, 0, heuristic.Default(), best)

		require.NoError(t, err)
		require.Equal(t, engine.Aborted, r.Outcome.Reason)
		require.Equal(t, 2, r.Outcome.Plies)
		require.Equal(t, MaxFitness, r.Fitness)
		require.Equal(t, 3, best.get())
	})

	t.Run("cutoff credits the material leader", func(t *testing.T) {
		tuner := quick(WithMaxPlies(2))

		// Material is level after two plies with black to move, so red is credited
		black, err := tuner.playSibling(ctx, 0, heuristic.Default(), newBest())
		require.NoError(t, err)
		require.Equal(t, game.Red, black.Outcome.Winner)
		require.Equal(t, heuristic.Default(), black.Params, "Baseline played red")
		require.Equal(t, MaxFitness, black.Fitness)

		red, err := tuner.playSibling(ctx, 1, heuristic.Default(), newBest())
		require.NoError(t, err)
		require.Equal(t, game.Red, red.Outcome.Winner)
		require.Equal(t, red.Challenger, red.Params, "Challenger played red")
	})

	t.Run("decisive win lowers the best", func(t *testing.T) {
		best := newBest()

		r, err := quick(WithStartingBoard(oneMoveWin(t))).playSibling(ctx, 0, heuristic.Default(), best)

		require.NoError(t, err)
		require.Equal(t, 1, r.Fitness)
		require.Equal(t, 1, best.get())
	})
}

func TestBest(t *testing.T) {
	b := newBest()
	require.Equal(t, MaxFitness, b.get())
	require.True(t, b.offer(10))
	require.False(t, b.offer(10), "Only strictly lower fitness is recorded")
	require.False(t, b.offer(12))
	require.True(t, b.offer(4))
	require.Equal(t, 4, b.get())
}

func TestRun(t *testing.T) {
	writer, err := metrics.NewWriter(t.TempDir(), "train")
	require.NoError(t, err)
	tuner := quick(WithMaxPlies(2), WithWriter(writer))

	params, err := tuner.Run(context.Background(), heuristic.Default(), 2, 2)
	require.NoError(t, err)
	require.Equal(t, heuristic.Default(), params, "No sibling can win within two plies")

	f, err := os.Open(filepath.Join(writer.BaseDir(), "generations.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+2*3, "Header plus the baseline and both siblings of each generation")
	require.Equal(t, "generation", rows[0][1])
	require.Equal(t, "true", rows[1][4], "Baseline row is selected")
}
