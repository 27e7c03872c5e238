package metrics

import (
	"checkers/heuristic"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.AddNode()
			}
			c.AddCutoff()
		}()
	}
	wg.Wait()
	c.CompleteDepth(5)

	m := c.Complete("depth_reached")
	require.Equal(t, 400, m.Nodes)
	require.Equal(t, 4, m.Cutoffs)
	require.Equal(t, 5, m.Depth)
	require.Equal(t, "depth_reached", m.Outcome)

	c.Start()
	require.Zero(t, c.Complete("").Nodes, "Start resets the counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete("finished"))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "test")
	require.NoError(t, err)
	require.DirExists(t, w.BaseDir())
	require.Contains(t, filepath.Base(w.BaseDir()), w.RunID()[:8])

	t.Run("setup", func(t *testing.T) {
		require.NoError(t, w.WriteSetup(AgentConfig{Label: "a", MaxDepth: 3}))

		data, err := os.ReadFile(filepath.Join(w.BaseDir(), "setup.json"))
		require.NoError(t, err)
		var setup struct {
			RunID string      `json:"run_id"`
			Setup AgentConfig `json:"setup"`
		}
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, w.RunID(), setup.RunID)
		require.Equal(t, 3, setup.Setup.MaxDepth)
	})

	t.Run("generations are appended under one header", func(t *testing.T) {
		record := GenerationRecord{Generation: 0, Sibling: -1, Fitness: 12, Selected: true, Params: heuristic.Default()}
		require.NoError(t, w.AppendGenerations([]GenerationRecord{record}))
		record.Generation = 1
		require.NoError(t, w.AppendGenerations([]GenerationRecord{record, record}))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "generations.csv"))
		require.Len(t, rows, 4)
		require.Equal(t, "pawn_value", rows[0][5])
		require.Equal(t, []string{w.RunID(), "1", "-1", "12", "true", "100"}, rows[3][:6])
		require.Len(t, rows[3], 5+int(heuristic.NumWeights))
	})

	t.Run("game and move records", func(t *testing.T) {
		games := []GameRecord{{ID: 1, Black: "a", Red: "b", GameMetric: GameMetric{Winner: "red", Reason: "no_moves", TotalPlies: 30}}}
		moves := []MoveRecord{{Game: 1, MoveMetric: MoveMetric{Ply: 1, Player: "black", SearchMetric: SearchMetric{Nodes: 10, Depth: 2}}}}
		require.NoError(t, w.WriteGameRecords(games))
		require.NoError(t, w.WriteMoveRecords(moves))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "30", rows[1][10])

		rows = readCSV(t, filepath.Join(w.BaseDir(), "move_records.csv"))
		require.Equal(t, []string{"1", "1", "black", "0s", "10", "0", "2", ""}, rows[1])
	})
}
