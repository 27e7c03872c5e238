package metrics

import (
	"checkers/heuristic"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type GameRecord struct {
	ID    int
	Black string // Label of the agent playing black
	Red   string // Label of the agent playing red
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type GenerationRecord struct {
	Generation int
	Sibling    int // -1 for the unmutated baseline
	Fitness    int
	Selected   bool // Whether these weights seed the next generation
	Params     heuristic.Params
}

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates root/name/<timestamp>-<run id> to hold the files of one run
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+runID[:8])
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

// WriteSetup stores the run configuration as setup.json
func (w *Writer) WriteSetup(setup any) error {
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string]any{"run_id": w.runID, "setup": setup}); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

// AppendGenerations adds records to generations.csv, writing the header on first use
func (w *Writer) AppendGenerations(records []GenerationRecord) error {
	path := filepath.Join(w.baseDir, "generations.csv")
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open generations file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if isNew {
		header := []string{"run_id", "generation", "sibling", "fitness", "selected"}
		for i := heuristic.Weight(0); i < heuristic.NumWeights; i++ {
			header = append(header, i.String())
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write generations header: %w", err)
		}
	}

	for _, record := range records {
		row := []string{
			w.runID,
			strconv.Itoa(record.Generation),
			strconv.Itoa(record.Sibling),
			strconv.Itoa(record.Fitness),
			strconv.FormatBool(record.Selected),
		}
		row = append(row, lo.Map(record.Params[:], func(weight int, _ int) string {
			return strconv.Itoa(weight)
		})...)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write generation row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "black", "red", "starting_player", "winner", "decisive", "reason", "start_time", "end_time", "duration", "plies"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Black,
			record.Red,
			record.StartingPlayer,
			record.Winner,
			strconv.FormatBool(record.Decisive),
			record.Reason,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalPlies),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "ply", "player", "duration", "nodes", "cutoffs", "depth", "outcome"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			record.Player,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			record.Outcome,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}
	return nil
}
