package equity

import (
	"github.com/domino14/mancala/board"
)

const (
	expertExtraTurnBase = 3.0
	expertCaptureBase   = 4.0
	lateGameRaceBonus   = 5.0
)

// StagedEvaluator changes what it values as the game progresses. Early on
// it wants stones in hand and extra turns, in the middle it hunts captures,
// and late it wants its own row emptied and its stones close to the store.
type StagedEvaluator struct{}

func (StagedEvaluator) Name() string { return "staged" }

func (StagedEvaluator) Evaluate(b *board.Board, player board.Player) float64 {
	opp := board.Opponent(player)
	ownPits := float64(b.PitStones(player))
	oppPits := float64(b.PitStones(opp))
	extraTurns := expertExtraTurnBase * float64(ExtraTurnPotential(b, player))
	captures := expertCaptureBase * float64(CapturePotential(b, player))

	score := float64(b.Spread(player))
	switch GameStage(b) {
	case EarlyGame:
		score += 0.5*ownPits - 0.3*oppPits
		score += 1.5 * extraTurns
	case MidGame:
		score += 0.2*ownPits - 0.2*oppPits
		score += 2 * extraTurns
		score += 3 * captures
	case LateGame:
		if ownPits < oppPits {
			score += lateGameRaceBonus
		} else {
			score -= lateGameRaceBonus
		}
		score += 2 * captures
		score += proximityBonus(b, player)
	}
	return score
}

// proximityBonus weights each of player's pits by how close it sits to the
// store: the farthest pit counts 1/6 per stone, the nearest 6/6.
func proximityBonus(b *board.Board, player board.Player) float64 {
	start := board.RowStart(player)
	bonus := 0.0
	for i := 0; i < board.PitsPerSide; i++ {
		weight := float64(i+1) / board.PitsPerSide
		bonus += float64(b[start+i]) * weight
	}
	return bonus
}
