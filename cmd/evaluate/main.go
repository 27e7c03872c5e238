package main

import (
	"checkers/experiments"
	"checkers/experiments/metrics"
	"checkers/heuristic"
	"checkers/meta"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	aPath := flag.String("a", "", "Weights file of the first agent, empty for the defaults")
	bPath := flag.String("b", "", "Weights file of the second agent, empty for the defaults")
	games := flag.Int("games", meta.MATCHUP_GAMES, "Number of games, colors alternate")
	duration := flag.Duration("duration", time.Second, "Thinking time per move")
	depth := flag.Int("depth", 0, "Max search depth per move, 0 for none")
	concurrency := flag.Int("concurrency", 4, "Games played at once")
	out := flag.String("out", "results", "Directory for the game records")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	a := metrics.AgentConfig{Label: label(*aPath, "a"), Duration: *duration, MaxDepth: *depth, Params: load(*aPath)}
	b := metrics.AgentConfig{Label: label(*bPath, "b"), Duration: *duration, MaxDepth: *depth, Params: load(*bPath)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := experiments.RunEvaluation(ctx, *out, a, b, *games,
		experiments.WithConcurrency(*concurrency),
		experiments.WithQuietPlyLimit(meta.QUIET_PLY_LIMIT),
		experiments.WithMaxPlies(meta.MAX_PLIES),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
	fmt.Printf("%s: %d wins, %d ahead\n", summary.A, summary.WinsA, summary.AheadA)
	fmt.Printf("%s: %d wins, %d ahead\n", summary.B, summary.WinsB, summary.AheadB)
}

func load(path string) heuristic.Params {
	if path == "" {
		return heuristic.Default()
	}
	p, err := heuristic.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load weights")
	}
	return p
}

func label(path, fallback string) string {
	if path == "" {
		return fallback + ":default"
	}
	return fallback + ":" + path
}
