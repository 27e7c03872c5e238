package main

import (
	"checkers/agent"
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/heuristic"
	"checkers/meta"
	"checkers/searcher"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Line of a board file holding the time limit in seconds, after the eight rows and the turn
const timeLimitLine = 9

func main() {
	boardPath := flag.String("board", "", "Board layout file; the tenth line may hold the time limit in seconds")
	blackHuman := flag.Bool("black", false, "Play black from the console")
	redHuman := flag.Bool("red", false, "Play red from the console")
	duration := flag.Duration("duration", meta.MOVE_DURATION, "Thinking time per computer move")
	paramsPath := flag.String("params", "", "Weights file for the computer players")
	treePath := flag.String("tree", "", "Write the search tree of the last computer move to this JSON file")
	debug := flag.Bool("debug", false, "Log search progress")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	board := game.NewBoard()
	limit := *duration
	if *boardPath != "" {
		content, err := os.ReadFile(*boardPath)
		if err != nil {
			log.Warn().Err(err).Msg("error reading board file, making default board")
		} else {
			board = game.NewBoardFromLayout(string(content))
			if l, ok := timeLimit(string(content)); ok {
				limit = l
			}
		}
	}

	params := heuristic.Default()
	if *paramsPath != "" {
		p, err := heuristic.Load(*paramsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load weights")
		}
		params = p
	}

	var trace *searcher.Trace
	if *treePath != "" {
		trace = &searcher.Trace{}
	}
	console := agent.NewConsoleAgent(os.Stdin, os.Stdout)
	computer := agent.NewSearchAgent(searcher.NewAlphaBeta(
		searcher.WithDuration(limit),
		searcher.WithEvaluationFn(params.Score),
		searcher.WithTrace(trace),
		searcher.WithMetrics(),
	))

	agents := [2]agent.Agent{announcer{computer, game.Black}, announcer{computer, game.Red}}
	if *blackHuman {
		agents[0] = announcer{console, game.Black}
	}
	if *redHuman {
		agents[1] = announcer{console, game.Red}
	}

	// Interactive games are played to the end
	e := engine.LocalEngine(agents, board, engine.WithQuietPlyLimit(0), engine.WithMaxPlies(0))
	outcome, _, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}

	fmt.Println("Game Over!")
	fmt.Print(e.Board().String())
	fmt.Printf("Player %s wins after %d plies\n", outcome.Winner, outcome.Plies)

	if trace != nil && trace.Root != nil {
		if err := trace.WriteFile(*treePath); err != nil {
			log.Error().Err(err).Msg("failed to write search tree")
		}
	}
}

// announcer prints every move its agent plays
type announcer struct {
	agent.Agent
	player game.Player
}

func (a announcer) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	move, metric, err := a.Agent.FindMove(b)
	if err == nil && move >= 0 && move < len(b.LegalMoves()) {
		fmt.Printf("%s plays %d. %s\n", a.player, move, b.LegalMoves()[move])
		if metric.Depth > 0 {
			log.Debug().Msgf("searched depth %d, %d nodes in %v", metric.Depth, metric.Nodes, metric.Duration)
		}
	}
	return move, metric, err
}

// timeLimit reads the time limit in seconds from a board file
func timeLimit(content string) (time.Duration, bool) {
	lines := strings.Split(strings.ReplaceAll(content, "\r", ""), "\n")
	if len(lines) <= timeLimitLine {
		return 0, false
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(lines[timeLimitLine]))
	if err != nil || seconds <= 0 {
		log.Warn().Msgf("could not read a time limit from %q", lines[timeLimitLine])
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
