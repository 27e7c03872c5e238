package experiments

import (
	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/searcher"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(m *matchup)

type matchup struct {
	concurrency   int
	quietPlyLimit int
	maxPlies      int
}

// WithConcurrency sets how many games are played at once
func WithConcurrency(n int) Option {
	return func(m *matchup) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

func WithQuietPlyLimit(limit int) Option {
	return func(m *matchup) {
		if limit >= 0 {
			m.quietPlyLimit = limit
		}
	}
}

func WithMaxPlies(plies int) Option {
	return func(m *matchup) {
		if plies >= 0 {
			m.maxPlies = plies
		}
	}
}

// Summary counts the results of a matchup from the point of view of its two agents
type Summary struct {
	A, B   string
	Games  int
	WinsA  int // Decisive wins
	WinsB  int
	AheadA int // Undecided games stopped with A ahead on material
	AheadB int
}

// RunMatchup plays games between a and b, alternating colors so that a plays black
// in even games. Games run concurrently.
func RunMatchup(ctx context.Context, a, b metrics.AgentConfig, games int, options ...Option) (Summary, []metrics.GameRecord, []metrics.MoveRecord, error) {
	m := &matchup{
		concurrency:   1,
		quietPlyLimit: meta.QUIET_PLY_LIMIT,
		maxPlies:      meta.MAX_PLIES,
	}
	for _, option := range options {
		option(m)
	}
	for _, config := range []metrics.AgentConfig{a, b} {
		if config.Duration <= 0 && config.MaxDepth <= 0 {
			return Summary{}, nil, nil, fmt.Errorf("agent %s needs a move duration or a max depth", config.Label)
		}
	}

	gameRecords := make([]metrics.GameRecord, games)
	moveRecords := make([][]metrics.MoveRecord, games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			black, red := a, b
			if i%2 == 1 {
				black, red = b, a
			}
			log.Info().Msgf("starting game %d of %d between black=%s and red=%s...", i+1, games, black.Label, red.Label)

			e := engine.LocalEngine([2]agent.Agent{newAgent(black), newAgent(red)}, game.NewBoard(),
				engine.WithQuietPlyLimit(m.quietPlyLimit),
				engine.WithMaxPlies(m.maxPlies),
				engine.WithAbort(func(int) bool { return ctx.Err() != nil }),
			)
			outcome, gameMetric, moveMetrics, err := e.Run()
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			gameRecords[i] = metrics.GameRecord{
				ID:         i + 1,
				Black:      black.Label,
				Red:        red.Label,
				GameMetric: gameMetric,
			}
			for _, mm := range moveMetrics {
				moveRecords[i] = append(moveRecords[i], metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d after %d plies (%s) with winner: %s", i+1, outcome.Plies, outcome.Reason, outcome.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, nil, nil, err
	}

	summary := Summary{A: a.Label, B: b.Label, Games: games}
	var moves []metrics.MoveRecord
	for i, record := range gameRecords {
		// a is black in even games
		aWon := (record.Winner == game.Black.String()) == (i%2 == 0)
		switch {
		case record.Decisive && aWon:
			summary.WinsA++
		case record.Decisive:
			summary.WinsB++
		case aWon:
			summary.AheadA++
		default:
			summary.AheadB++
		}
		moves = append(moves, moveRecords[i]...)
	}
	return summary, gameRecords, moves, nil
}

// RunEvaluation plays a matchup and stores its setup, game records and move records
// under root/evaluation.
func RunEvaluation(ctx context.Context, root string, a, b metrics.AgentConfig, games int, options ...Option) (Summary, error) {
	log.Info().Msgf("starting evaluation of %s against %s...", a.Label, b.Label)
	summary, gameRecords, moveRecords, err := RunMatchup(ctx, a, b, games, options...)
	if err != nil {
		return summary, err
	}
	log.Info().Msgf("completed evaluation: %+v", summary)

	writer, err := metrics.NewWriter(root, "evaluation")
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup([]metrics.AgentConfig{a, b}); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return summary, nil
}

func newAgent(config metrics.AgentConfig) agent.Agent {
	options := []searcher.Option{searcher.WithMetrics(), searcher.WithEvaluationFn(config.Params.Score)}

	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	return agent.NewSearchAgent(searcher.NewAlphaBeta(options...))
}
