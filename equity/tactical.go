package equity

import (
	"github.com/domino14/mancala/board"
)

const (
	tacticalExtraTurnWeight = 2.0
	tacticalCaptureWeight   = 2.5
	tacticalPitWeight       = 0.3
)

// TacticalEvaluator rewards pending extra turns and captures on top of the
// store difference, and gives a small bonus for stones kept in hand.
type TacticalEvaluator struct{}

func (TacticalEvaluator) Name() string { return "tactical" }

func (TacticalEvaluator) Evaluate(b *board.Board, player board.Player) float64 {
	return float64(b.Spread(player)) +
		tacticalExtraTurnWeight*float64(ExtraTurnPotential(b, player)) +
		tacticalCaptureWeight*float64(CapturePotential(b, player)) +
		tacticalPitWeight*float64(b.PitStones(player))
}
