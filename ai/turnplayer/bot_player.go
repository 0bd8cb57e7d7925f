package turnplayer

import (
	"context"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/game"
	"github.com/domino14/mancala/minimax"
)

// AIPlayer picks moves with a minimax search at a fixed difficulty.
type AIPlayer struct {
	solver     *minimax.Solver
	lastResult *minimax.Result
}

func NewAIPlayer(d minimax.Difficulty) *AIPlayer {
	return &AIPlayer{solver: minimax.NewSolver(d)}
}

func (p *AIPlayer) Name() string {
	return "minimax-" + p.solver.Difficulty().String()
}

func (p *AIPlayer) Difficulty() minimax.Difficulty {
	return p.solver.Difficulty()
}

func (p *AIPlayer) SetDifficulty(d minimax.Difficulty) {
	p.solver.SetDifficulty(d)
}

// Solver exposes the underlying search, e.g. to change its log stream or
// depth.
func (p *AIPlayer) Solver() *minimax.Solver {
	return p.solver
}

// LastResult is the full result of the most recent ChooseMove, or nil.
func (p *AIPlayer) LastResult() *minimax.Result {
	return p.lastResult
}

func (p *AIPlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if g.Playing() == game.GameOver {
		return board.NoMove, game.ErrGameOver
	}
	res, err := p.solver.Solve(ctx, g.Board(), g.PlayerOnTurn())
	if err != nil {
		return board.NoMove, err
	}
	p.lastResult = res
	if res.Move == board.NoMove {
		return board.NoMove, ErrNoMove
	}
	return res.Move, nil
}
