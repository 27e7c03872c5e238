package heuristic

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// Weight indexes one entry of Params
type Weight int

const (
	PawnValue      Weight = iota // Value of a pawn
	KingValue                    // Value of a king
	AdvanceMul                   // Per row a pawn has advanced from its home row
	TrueCenter                   // Piece on one of the true center squares
	OffCenter                    // Piece on the ring next to the center
	DefenderCenter               // Piece guarding a center square of its home row
	DefenderSide                 // Piece guarding an edge square of its home row
	PerMove                      // Per legal quiet move
	PerJumpMove                  // Per legal move while captures are forced
	Aggression                   // Scales the material ratio when one side leads
	Pursuit                      // Endgame penalty per unit of distance between a king and its farthest prey
	NumWeights
)

var weightNames = [NumWeights]string{
	"pawn_value",
	"king_value",
	"advance_mul",
	"true_center",
	"off_center",
	"defender_center",
	"defender_side",
	"per_move",
	"per_jump_move",
	"aggression",
	"pursuit",
}

func (w Weight) String() string {
	if w < 0 || w >= NumWeights {
		return fmt.Sprintf("weight(%d)", int(w))
	}
	return weightNames[w]
}

// Params is the weight vector of the evaluation function. It is a value type: copies
// never share state, and Mutate returns a new vector.
type Params [NumWeights]int

// Default returns the baseline weights tuning starts from
func Default() Params {
	return Params{
		PawnValue:      100,
		KingValue:      300,
		AdvanceMul:     5,
		TrueCenter:     50,
		OffCenter:      25,
		DefenderCenter: 25,
		DefenderSide:   15,
		PerMove:        5,
		PerJumpMove:    8,
		Aggression:     20,
		Pursuit:        10,
	}
}

// Mutate returns a neighbor of p: every weight moves by a uniform integer within
// 10% of its magnitude (at least one unit) and is kept non-negative.
func (p Params) Mutate(rng *rand.Rand) Params {
	next := p
	for i, w := range p {
		span := abs(w) / 10
		if span < 1 {
			span = 1
		}
		w += rng.Intn(2*span+1) - span
		if w < 0 {
			w = 0
		}
		next[i] = w
	}
	return next
}

func (p Params) MarshalZerologObject(e *zerolog.Event) {
	for i, w := range p {
		e.Int(Weight(i).String(), w)
	}
}

// named is the file form of Params
type named struct {
	PawnValue      int `yaml:"pawn_value"`
	KingValue      int `yaml:"king_value"`
	AdvanceMul     int `yaml:"advance_mul"`
	TrueCenter     int `yaml:"true_center"`
	OffCenter      int `yaml:"off_center"`
	DefenderCenter int `yaml:"defender_center"`
	DefenderSide   int `yaml:"defender_side"`
	PerMove        int `yaml:"per_move"`
	PerJumpMove    int `yaml:"per_jump_move"`
	Aggression     int `yaml:"aggression"`
	Pursuit        int `yaml:"pursuit"`
}

func (p Params) named() named {
	return named{
		PawnValue:      p[PawnValue],
		KingValue:      p[KingValue],
		AdvanceMul:     p[AdvanceMul],
		TrueCenter:     p[TrueCenter],
		OffCenter:      p[OffCenter],
		DefenderCenter: p[DefenderCenter],
		DefenderSide:   p[DefenderSide],
		PerMove:        p[PerMove],
		PerJumpMove:    p[PerJumpMove],
		Aggression:     p[Aggression],
		Pursuit:        p[Pursuit],
	}
}

func (n named) params() Params {
	return Params{
		PawnValue:      n.PawnValue,
		KingValue:      n.KingValue,
		AdvanceMul:     n.AdvanceMul,
		TrueCenter:     n.TrueCenter,
		OffCenter:      n.OffCenter,
		DefenderCenter: n.DefenderCenter,
		DefenderSide:   n.DefenderSide,
		PerMove:        n.PerMove,
		PerJumpMove:    n.PerJumpMove,
		Aggression:     n.Aggression,
		Pursuit:        n.Pursuit,
	}
}

func (p Params) MarshalYAML() (interface{}, error) {
	return p.named(), nil
}

// UnmarshalYAML fills weights missing from the document with their defaults
func (p *Params) UnmarshalYAML(value *yaml.Node) error {
	n := Default().named()
	if err := value.Decode(&n); err != nil {
		return err
	}
	*p = n.params()
	return nil
}

// Load reads weights saved by Save
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read weights file: %w", err)
	}
	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("failed to parse weights file %s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write weights file: %w", err)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
