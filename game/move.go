package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Move carries a piece from Start to End. Captures lists the jumped squares in the
// order they were taken; it is empty for a quiet move.
type Move struct {
	Start    Square
	End      Square
	Captures []Square
}

func (m Move) IsJump() bool {
	return len(m.Captures) > 0
}

// Captured reports whether sq was jumped by this move
func (m Move) Captured(sq Square) bool {
	return lo.Contains(m.Captures, sq)
}

func (m Move) String() string {
	if !m.IsJump() {
		return fmt.Sprintf("start: %s -> end: %s", m.Start, m.End)
	}
	jumps := make([]string, len(m.Captures))
	for i, c := range m.Captures {
		jumps[i] = c.String()
	}
	return fmt.Sprintf("start: %s -> end: %s jumps: [%s]", m.Start, m.End, strings.Join(jumps, " "))
}
