package agent

import (
	"bufio"
	"checkers/experiments/metrics"
	"checkers/game"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type consoleAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsoleAgent returns an agent that asks a human for moves. A move is entered by
// its number or as "row,col row,col" for its start and end squares.
func NewConsoleAgent(in io.Reader, out io.Writer) Agent {
	return &consoleAgent{in: bufio.NewScanner(in), out: out}
}

func (a *consoleAgent) FindMove(b *game.Board) (int, metrics.SearchMetric, error) {
	fmt.Fprint(a.out, b.String())
	fmt.Fprint(a.out, b.MovesString())

	labels := lo.Map(b.LegalMoves(), func(mv game.Move, _ int) string {
		return mv.Start.String() + " " + mv.End.String()
	})
	for {
		fmt.Fprint(a.out, "Enter a move: ")
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return 0, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
			}
			return 0, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", io.ErrUnexpectedEOF)
		}
		input := strings.Join(strings.Fields(a.in.Text()), " ")

		if i := lo.IndexOf(labels, input); i >= 0 {
			return i, metrics.SearchMetric{}, nil
		}
		// Range is checked by the board, the engine asks again on a bad index
		if n, err := strconv.Atoi(input); err == nil {
			return n, metrics.SearchMetric{}, nil
		}
		fmt.Fprintln(a.out, "Please enter a valid number")
	}
}
