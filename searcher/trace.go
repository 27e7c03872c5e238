package searcher

import (
	"checkers/game"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// TraceNode is one visited (or pruned) position of a recorded search tree
type TraceNode struct {
	Move      *game.Move   `json:"mv,omitempty"`
	Value     int          `json:"h_val"`
	Alpha     int          `json:"alpha"`
	Beta      int          `json:"beta"`
	Maximizer bool         `json:"is_max"`
	Pruned    bool         `json:"pruned"`
	Children  []*TraceNode `json:"next,omitempty"`
}

// Trace keeps the tree of the deepest completed iteration, for inspecting why a move was chosen
type Trace struct {
	Depth int        `json:"depth"`
	Root  *TraceNode `json:"root"`
}

func (t *Trace) store(root *TraceNode, depth int) {
	if t == nil || root == nil {
		return
	}
	t.Depth = depth
	t.Root = root
}

func (t *Trace) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(t); err != nil {
		return fmt.Errorf("failed to encode search tree: %w", err)
	}
	return nil
}

func (t *Trace) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tree file: %w", err)
	}
	defer f.Close()
	return t.WriteJSON(f)
}

// child appends the node reached by mv. A nil node stays nil so callers need no checks when tracing is off.
func (n *TraceNode) child(mv game.Move, maximizer bool, alpha, beta int) *TraceNode {
	if n == nil {
		return nil
	}
	c := &TraceNode{Move: &mv, Maximizer: maximizer, Alpha: alpha, Beta: beta}
	n.Children = append(n.Children, c)
	return c
}

func (n *TraceNode) record(value, alpha, beta int) {
	if n == nil {
		return
	}
	n.Value = value
	n.Alpha = alpha
	n.Beta = beta
}

// prune marks the moves skipped after a cutoff
func (n *TraceNode) prune(skipped []game.Move, alpha, beta int) {
	if n == nil {
		return
	}
	for _, mv := range skipped {
		c := n.child(mv, !n.Maximizer, alpha, beta)
		c.Pruned = true
	}
}
