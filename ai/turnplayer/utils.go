package turnplayer

import (
	"context"
	"fmt"
	"strings"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/game"
	"github.com/domino14/mancala/minimax"
)

// FromName builds a player from a name such as "random" or a difficulty
// tier ("easy", "hard", ...).
func FromName(name string) (TurnPlayer, error) {
	if strings.EqualFold(strings.TrimSpace(name), "random") {
		return RandomPlayer{}, nil
	}
	d, err := minimax.ParseDifficulty(name)
	if err != nil {
		return nil, err
	}
	return NewAIPlayer(d), nil
}

// PlayTurn lets p choose and play one move in g. The outcome tells the
// caller whether p is still on turn.
func PlayTurn(ctx context.Context, g *game.Game, p TurnPlayer) (int, board.MoveOutcome, error) {
	pit, err := p.ChooseMove(ctx, g)
	if err != nil {
		return board.NoMove, board.MoveOutcome{}, err
	}
	out, err := g.PlayMove(pit)
	if err != nil {
		return pit, out, fmt.Errorf("%s chose pit %d: %w", p.Name(), pit, err)
	}
	return pit, out, nil
}
