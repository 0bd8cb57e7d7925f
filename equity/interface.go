// Package equity holds the static evaluators used at the leaves of the
// search tree. Each difficulty tier has its own evaluator; they share no
// state and differ only in formula.
package equity

import (
	"github.com/domino14/mancala/board"
)

// Evaluator scores a position from the point of view of player. Higher is
// better for player. Implementations must be deterministic and must not
// modify the board.
type Evaluator interface {
	Evaluate(b *board.Board, player board.Player) float64
	Name() string
}
