package equity

import (
	"github.com/domino14/mancala/board"
)

// ExtraTurnPotential counts player's pits whose stone count equals the
// distance to player's own store, i.e. moves that would earn another turn
// right now.
func ExtraTurnPotential(b *board.Board, player board.Player) int {
	store := board.StoreIndex(player)
	start := board.RowStart(player)
	count := 0
	for pit := start; pit < start+board.PitsPerSide; pit++ {
		stones := b[pit]
		if stones == 0 {
			continue
		}
		if stones == (store-pit+board.NumSlots)%board.NumSlots {
			count++
		}
	}
	return count
}

// landingPit returns the slot the last stone sown from pit would reach,
// stepping over the opponent's store on every pass, as ApplyMove does. It
// is not the plain (pit+stones)%14 shortcut: a pit holding 9 stones at
// index 5 lands on 1, not 0.
func landingPit(pit, stones int, player board.Player) int {
	oppStore := board.StoreIndex(board.Opponent(player))
	// One full lap visits every slot but the opponent's store.
	lap := board.NumSlots - 1
	stones = (stones-1)%lap + 1
	idx := pit
	for stones > 0 {
		idx = (idx + 1) % board.NumSlots
		if idx == oppStore {
			continue
		}
		stones--
	}
	return idx
}

// CapturePotential estimates the stones player could capture with a single
// move from this position: for each move whose last stone would land in an
// empty pit on player's own row facing a non-empty pit, it adds the facing
// stones plus one. The board is not simulated, so stones sown earlier in
// the same move are ignored.
func CapturePotential(b *board.Board, player board.Player) int {
	start := board.RowStart(player)
	total := 0
	for pit := start; pit < start+board.PitsPerSide; pit++ {
		stones := b[pit]
		if stones == 0 {
			continue
		}
		landing := landingPit(pit, stones, player)
		if !board.OwnsPit(player, landing) || b[landing] != 0 {
			continue
		}
		opp := board.OppositePit(landing)
		if opp == board.Store0 || opp == board.Store1 {
			panic("capture potential resolved a store as the opposite pit")
		}
		if b[opp] > 0 {
			total += b[opp] + 1
		}
	}
	return total
}
