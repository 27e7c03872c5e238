// meta/meta.go
package meta

import "time"

// MOVE_DURATION is the thinking time per move in interactive games.
const MOVE_DURATION = 20 * time.Second

// TRAIN_MOVE_DURATION is the thinking time per move in self-play.
const TRAIN_MOVE_DURATION = 5 * time.Second

// SIBLINGS is the number of mutated challengers per generation.
const SIBLINGS = 50

// GENERATIONS is the number of generations of a tuning run.
const GENERATIONS = 10

// QUIET_PLY_LIMIT ends a game after this many plies without a capture.
const QUIET_PLY_LIMIT = 50

// MAX_PLIES caps the length of a single game.
const MAX_PLIES = 300

// MATCHUP_GAMES is the number of games of a head-to-head evaluation.
const MATCHUP_GAMES = 20
