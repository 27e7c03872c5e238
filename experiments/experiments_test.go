package experiments

import (
	"checkers/experiments/metrics"
	"checkers/heuristic"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func configs() (metrics.AgentConfig, metrics.AgentConfig) {
	strong := heuristic.Default()
	weak := heuristic.Default()
	weak[heuristic.KingValue] = 0
	return metrics.AgentConfig{Label: "default", MaxDepth: 2, Params: strong},
		metrics.AgentConfig{Label: "no_kings", MaxDepth: 1, Params: weak}
}

func TestRunMatchup(t *testing.T) {
	a, b := configs()

	summary, games, moves, err := RunMatchup(context.Background(), a, b, 4, WithConcurrency(2), WithMaxPlies(10))

	require.NoError(t, err)
	require.Len(t, games, 4)
	require.Equal(t, 4, summary.WinsA+summary.WinsB+summary.AheadA+summary.AheadB)
	plies := 0
	for i, g := range games {
		require.Equal(t, i+1, g.ID)
		if i%2 == 0 {
			require.Equal(t, "default", g.Black)
			require.Equal(t, "no_kings", g.Red)
		} else {
			require.Equal(t, "no_kings", g.Black)
			require.Equal(t, "default", g.Red)
		}
		require.LessOrEqual(t, g.TotalPlies, 10)
		plies += g.TotalPlies
	}
	require.Len(t, moves, plies)
	for i := 1; i < len(moves); i++ {
		require.LessOrEqual(t, moves[i-1].Game, moves[i].Game, "Move records are grouped by game")
	}
}

func TestRunMatchupNeedsBudget(t *testing.T) {
	a, b := configs()
	b.MaxDepth = 0

	_, _, _, err := RunMatchup(context.Background(), a, b, 2)

	require.ErrorContains(t, err, "no_kings")
}

func TestRunEvaluation(t *testing.T) {
	a, b := configs()
	root := t.TempDir()

	_, err := RunEvaluation(context.Background(), root, a, b, 2, WithMaxPlies(4))
	require.NoError(t, err)

	runs, err := os.ReadDir(filepath.Join(root, "evaluation"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	dir := filepath.Join(root, "evaluation", runs[0].Name())

	require.FileExists(t, filepath.Join(dir, "setup.json"))
	f, err := os.Open(filepath.Join(dir, "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "max_plies", rows[1][6])
}
