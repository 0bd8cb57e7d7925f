// Package board implements the Kalah board: the fourteen pit/store slots,
// sowing, captures, extra turns and end-of-game detection. Nothing in here
// knows about search; the minimax package drives it from outside.
package board

import (
	"errors"
	"fmt"
)

const (
	// PitsPerSide is the number of playable pits in each player's row.
	PitsPerSide = 6
	// NumSlots counts all pits plus both stores.
	NumSlots = 2*PitsPerSide + 2

	Store0 = PitsPerSide
	Store1 = NumSlots - 1

	DefaultStonesPerPit = 4

	// NoMove is returned by move pickers when the side to move has
	// nothing legal.
	NoMove = -1
)

// Player identifies one of the two sides.
type Player int

const (
	Player0 Player = 0
	Player1 Player = 1
)

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrInvalidMove    = errors.New("invalid move")
	ErrInvalidPlayer  = errors.New("invalid player")
)

// Board holds the stone counts. Indices 0-5 are player 0's pits and 6 is
// their store; 7-12 are player 1's pits and 13 is theirs. It is an array,
// so assigning a Board copies it.
type Board [NumSlots]int

// New returns the starting position with stonesPerPit in every pit and
// empty stores.
func New(stonesPerPit int) Board {
	var b Board
	for i := range b {
		if i == Store0 || i == Store1 {
			continue
		}
		b[i] = stonesPerPit
	}
	return b
}

// FromSlice builds a board from an arbitrary slice, validating it.
func FromSlice(slots []int) (Board, error) {
	var b Board
	if len(slots) != NumSlots {
		return b, fmt.Errorf("%w: expected %d slots, got %d", ErrMalformedBoard,
			NumSlots, len(slots))
	}
	copy(b[:], slots)
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks that no slot holds a negative count.
func (b *Board) Validate() error {
	for i, ct := range b {
		if ct < 0 {
			return fmt.Errorf("%w: slot %d has %d stones", ErrMalformedBoard, i, ct)
		}
	}
	return nil
}

// Valid reports whether p is one of the two players.
func (p Player) Valid() bool {
	return p == Player0 || p == Player1
}

func (p Player) String() string {
	return fmt.Sprintf("player %d", int(p))
}

// Opponent returns the other player.
func Opponent(p Player) Player {
	return 1 - p
}

// StoreIndex returns the slot of p's store.
func StoreIndex(p Player) int {
	if p == Player0 {
		return Store0
	}
	return Store1
}

// RowStart returns the index of p's first pit.
func RowStart(p Player) int {
	if p == Player0 {
		return 0
	}
	return Store0 + 1
}

// OwnsPit reports whether idx is one of p's six pits.
func OwnsPit(p Player, idx int) bool {
	start := RowStart(p)
	return idx >= start && idx < start+PitsPerSide
}

// OppositePit returns the pit facing idx across the board. idx must be a
// pit, not a store.
func OppositePit(idx int) int {
	return 2*PitsPerSide - idx
}

// Store returns the number of stones banked by p.
func (b Board) Store(p Player) int {
	return b[StoreIndex(p)]
}

// PitStones sums the stones in p's six pits, excluding the store.
func (b Board) PitStones(p Player) int {
	start := RowStart(p)
	sum := 0
	for i := start; i < start+PitsPerSide; i++ {
		sum += b[i]
	}
	return sum
}

// TotalStones sums every slot, stores included.
func (b Board) TotalStones() int {
	sum := 0
	for _, ct := range b {
		sum += ct
	}
	return sum
}

// Spread is p's store minus the opponent's store.
func (b Board) Spread(p Player) int {
	return b.Store(p) - b.Store(Opponent(p))
}
