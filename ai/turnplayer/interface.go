// Package turnplayer has the things that pick a move for whoever is on
// turn in a game.
package turnplayer

import (
	"context"
	"errors"

	"github.com/domino14/mancala/game"
)

var ErrNoMove = errors.New("no legal move for player on turn")

type TurnPlayer interface {
	Name() string
	// ChooseMove returns a legal pit for the player on turn in g. It does
	// not play it.
	ChooseMove(ctx context.Context, g *game.Game) (int, error)
}
