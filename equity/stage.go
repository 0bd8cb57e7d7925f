package equity

import (
	"github.com/domino14/mancala/board"
)

// Stage is a coarse measure of how far along a game is.
type Stage int

const (
	EarlyGame Stage = iota
	MidGame
	LateGame
)

const (
	earlyGameCutoff = 0.3
	midGameCutoff   = 0.7
)

func (s Stage) String() string {
	switch s {
	case EarlyGame:
		return "early"
	case MidGame:
		return "mid"
	}
	return "late"
}

// GameStage classifies the board by the fraction of all stones already
// banked in either store. An empty board counts as late.
func GameStage(b *board.Board) Stage {
	total := b.TotalStones()
	if total == 0 {
		return LateGame
	}
	banked := float64(b[board.Store0]+b[board.Store1]) / float64(total)
	switch {
	case banked < earlyGameCutoff:
		return EarlyGame
	case banked < midGameCutoff:
		return MidGame
	}
	return LateGame
}
