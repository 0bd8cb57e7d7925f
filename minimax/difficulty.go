package minimax

import (
	"fmt"
	"strings"

	"github.com/domino14/mancala/equity"
)

// Difficulty selects how deep the solver looks and which evaluator it uses
// at the leaves.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

const DefaultDifficulty = Medium

type tier struct {
	name      string
	maxDepth  int
	evaluator equity.Evaluator
}

var tiers = [...]tier{
	Easy:   {"easy", 2, equity.StoreDiffEvaluator{}},
	Medium: {"medium", 5, equity.PitBalanceEvaluator{}},
	Hard:   {"hard", 8, equity.TacticalEvaluator{}},
	Expert: {"expert", 10, equity.StagedEvaluator{}},
}

// Difficulties lists every tier from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}

// ParseDifficulty maps a tier name to a Difficulty. Unknown names return
// DefaultDifficulty along with an error.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, t := range tiers {
		if t.name == s {
			return Difficulty(d), nil
		}
	}
	return DefaultDifficulty, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Expert
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return tiers[d].name
}

// MaxDepth is the number of plies searched below each root move.
func (d Difficulty) MaxDepth() int {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return tiers[d].maxDepth
}

func (d Difficulty) Evaluator() equity.Evaluator {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return tiers[d].evaluator
}
