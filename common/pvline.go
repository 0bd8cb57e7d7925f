package common

import (
	"fmt"
	"strings"

	"github.com/domino14/mancala/board"
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []int
	score float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(pit int, newPVLine PVLine, score float64) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, pit)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

// GetPVMove returns the first move of the line, or board.NoMove if the
// line is empty.
func (pvLine *PVLine) GetPVMove() int {
	if len(pvLine.Moves) == 0 {
		return board.NoMove
	}
	return pvLine.Moves[0]
}

func (pvLine *PVLine) Score() float64 {
	return pvLine.score
}

// A pit index alone tells us whose move it was.
func mover(pit int) board.Player {
	if board.OwnsPit(board.Player0, pit) {
		return board.Player0
	}
	return board.Player1
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("PV; val %.2f\n", pvLine.score))
	for i, pit := range pvLine.Moves {
		s.WriteString(fmt.Sprintf("%d: pit %d (%v)\n", i+1, pit, mover(pit)))
	}
	return s.String()
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	var s strings.Builder
	s.WriteString(fmt.Sprintf("PV; val %.2f; ", pvLine.score))
	for i, pit := range pvLine.Moves {
		s.WriteString(fmt.Sprintf("%d: pit %d (%v); ", i+1, pit, mover(pit)))
	}
	return s.String()
}
