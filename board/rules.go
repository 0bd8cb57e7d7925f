package board

import (
	"fmt"
)

// MoveOutcome describes what happened when a move was sown.
type MoveOutcome struct {
	// ExtraTurn is set when the last stone fell into the mover's store.
	ExtraTurn bool
	// Captured is the number of stones moved into the store by a capture,
	// counting the capturing stone itself. Zero if nothing was captured.
	Captured int
	// LastPit is the slot the final stone was sown into.
	LastPit int
}

// LegalMoves returns p's non-empty pits in ascending order. Search relies on
// this order for its tie-break.
func (b *Board) LegalMoves(p Player) []int {
	start := RowStart(p)
	moves := make([]int, 0, PitsPerSide)
	for i := start; i < start+PitsPerSide; i++ {
		if b[i] > 0 {
			moves = append(moves, i)
		}
	}
	return moves
}

// HasMoves is LegalMoves without the allocation.
func (b *Board) HasMoves(p Player) bool {
	return b.PitStones(p) > 0
}

// ValidateMove checks that p may sow from pit, without touching the board.
func (b *Board) ValidateMove(p Player, pit int) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, int(p))
	}
	if !OwnsPit(p, pit) {
		return fmt.Errorf("%w: pit %d does not belong to %v", ErrInvalidMove, pit, p)
	}
	if b[pit] == 0 {
		return fmt.Errorf("%w: pit %d is empty", ErrInvalidMove, pit)
	}
	return nil
}

// ApplyMove sows the stones from pit for player p, mutating the board. It
// either applies the whole move or returns an error and leaves the board
// untouched.
func (b *Board) ApplyMove(p Player, pit int) (MoveOutcome, error) {
	if err := b.ValidateMove(p, pit); err != nil {
		return MoveOutcome{}, err
	}
	return b.sow(p, pit), nil
}

// sow assumes the move was validated.
func (b *Board) sow(p Player, pit int) MoveOutcome {
	ownStore := StoreIndex(p)
	oppStore := StoreIndex(Opponent(p))

	stones := b[pit]
	b[pit] = 0
	idx := pit
	for stones > 0 {
		idx = (idx + 1) % NumSlots
		if idx == oppStore {
			continue
		}
		b[idx]++
		stones--
	}

	out := MoveOutcome{LastPit: idx}
	if idx == ownStore {
		out.ExtraTurn = true
		return out
	}
	if OwnsPit(p, idx) && b[idx] == 1 {
		opp := OppositePit(idx)
		if opp == Store0 || opp == Store1 {
			panic(fmt.Sprintf("opposite of pit %d resolved to store %d", idx, opp))
		}
		if b[opp] > 0 {
			out.Captured = b[opp] + 1
			b[ownStore] += out.Captured
			b[idx] = 0
			b[opp] = 0
		}
	}
	return out
}

// IsTerminal reports whether either row is empty. It does not sweep the
// remaining stones; see Sweep.
func (b *Board) IsTerminal() bool {
	return b.PitStones(Player0) == 0 || b.PitStones(Player1) == 0
}

// Sweep moves each side's remaining pit stones into its own store. Callers
// do this once IsTerminal is true, before deciding a winner.
func (b *Board) Sweep() {
	for _, p := range []Player{Player0, Player1} {
		start := RowStart(p)
		for i := start; i < start+PitsPerSide; i++ {
			b[StoreIndex(p)] += b[i]
			b[i] = 0
		}
	}
}

// Winner compares the stores. The boolean is false on a tie.
func (b *Board) Winner() (Player, bool) {
	switch {
	case b[Store0] > b[Store1]:
		return Player0, true
	case b[Store1] > b[Store0]:
		return Player1, true
	}
	return Player0, false
}
