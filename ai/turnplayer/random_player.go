package turnplayer

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/game"
)

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct{}

func (RandomPlayer) Name() string { return "random" }

func (RandomPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if g.Playing() == game.GameOver {
		return board.NoMove, game.ErrGameOver
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove, ErrNoMove
	}
	return moves[frand.Intn(len(moves))], nil
}
