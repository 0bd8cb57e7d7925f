package equity

import (
	"github.com/domino14/mancala/board"
)

// StoreDiffEvaluator only looks at the stores. Anything it finds beyond the
// current score comes from search depth, not from the heuristic.
type StoreDiffEvaluator struct{}

func (StoreDiffEvaluator) Name() string { return "store-diff" }

func (StoreDiffEvaluator) Evaluate(b *board.Board, player board.Player) float64 {
	return float64(b.Spread(player))
}

// PitBalanceEvaluator adds half a point per stone of pit advantage to the
// store difference.
type PitBalanceEvaluator struct{}

func (PitBalanceEvaluator) Name() string { return "pit-balance" }

func (PitBalanceEvaluator) Evaluate(b *board.Board, player board.Player) float64 {
	opp := board.Opponent(player)
	pitDiff := b.PitStones(player) - b.PitStones(opp)
	return float64(b.Spread(player)) + 0.5*float64(pitDiff)
}
