package main

import (
	"checkers/experiments/metrics"
	"checkers/heuristic"
	"checkers/meta"
	"checkers/tuner"
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML run file")
	outPath := flag.String("out", "best_params.yaml", "Where to save the tuned weights")
	generations := flag.Int("generations", meta.GENERATIONS, "Number of generations")
	siblings := flag.Int("siblings", meta.SIBLINGS, "Mutated challengers per generation")
	duration := flag.Duration("duration", meta.TRAIN_MOVE_DURATION, "Thinking time per move")
	depth := flag.Int("depth", 0, "Max search depth per move, 0 for none")
	seed := flag.Uint64("seed", 0, "Mutation seed, 0 picks one from the clock")
	debug := flag.Bool("debug", false, "Log every sibling game")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	config := meta.DefaultConfig()
	if *configPath != "" {
		c, err := meta.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		config = c
	}
	// Flags given on the command line win over the run file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "generations":
			config.Generations = *generations
		case "siblings":
			config.Siblings = *siblings
		case "duration":
			config.MoveDuration = *duration
		case "depth":
			config.MaxDepth = *depth
		case "seed":
			config.Seed = *seed
		}
	})

	baseline := heuristic.Default()
	if config.Params != "" {
		p, err := heuristic.Load(config.Params)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load starting weights")
		}
		baseline = p
	}

	writer, err := metrics.NewWriter(config.Output, "train")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	if err := writer.WriteSetup(config); err != nil {
		log.Fatal().Err(err).Msg("failed to store setup")
	}
	log.Info().Str("run_id", writer.RunID()).Str("dir", writer.BaseDir()).Msg("starting training")

	options := []tuner.Option{
		tuner.WithMoveDuration(config.MoveDuration),
		tuner.WithMaxDepth(config.MaxDepth),
		tuner.WithQuietPlyLimit(config.QuietPlyLimit),
		tuner.WithMaxPlies(config.MaxPlies),
		tuner.WithLogger(log.Logger),
		tuner.WithWriter(writer),
	}
	if config.Seed != 0 {
		options = append(options, tuner.WithSeed(config.Seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params, err := tuner.New(options...).Run(ctx, baseline, config.Generations, config.Siblings)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	if err := heuristic.Save(*outPath, params); err != nil {
		log.Fatal().Err(err).Msg("failed to save weights")
	}
	log.Info().Object("params", params).Str("path", *outPath).Msg("saved tuned weights")
}
