// Package automatic plays computer vs computer games, for comparing
// difficulty tiers against each other.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/mancala/ai/turnplayer"
	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/game"
)

// GameRunner plays one game at a time between two players. It is not safe
// for concurrent use; give every worker its own.
type GameRunner struct {
	game      *game.Game
	aiplayers [2]turnplayer.TurnPlayer

	stonesPerPit int
	randomPlies  int
	rng          *frand.RNG

	logchan chan string
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID     string
	WentFirst  board.Player
	Scores     [2]int
	Turns      int
	Winner     board.Player
	Tie        bool
	FinalBoard board.Board
}

// NewGameRunner sets up a runner for the two named players (see
// turnplayer.FromName).
func NewGameRunner(logchan chan string, player1, player2 string) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, stonesPerPit: board.DefaultStonesPerPit}
	for idx, name := range []string{player1, player2} {
		p, err := turnplayer.FromName(name)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", idx+1, err)
		}
		r.aiplayers[idx] = p
	}
	return r, nil
}

// SetRandomPlies makes the first n moves of every game random.
func (r *GameRunner) SetRandomPlies(n int) {
	r.randomPlies = n
}

// SetSeed makes the random opening moves reproducible.
func (r *GameRunner) SetSeed(seed Seed) {
	r.rng = frand.NewCustom(seed[:], 1024, 12)
}

func (r *GameRunner) SetStonesPerPit(n int) {
	r.stonesPerPit = n
}

func (r *GameRunner) randIntn(n int) int {
	if r.rng != nil {
		return r.rng.Intn(n)
	}
	return frand.Intn(n)
}

// PlayGame plays a full game with first moving first and returns the
// result.
func (r *GameRunner) PlayGame(ctx context.Context, first board.Player) (*GameResult, error) {
	var err error
	r.game, err = game.NewGame(game.Options{
		StonesPerPit: r.stonesPerPit,
		FirstPlayer:  first,
		Names:        [2]string{r.aiplayers[0].Name() + "-1", r.aiplayers[1].Name() + "-2"},
	})
	if err != nil {
		return nil, err
	}

	for r.game.Playing() == game.Playing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.playTurn(ctx); err != nil {
			return nil, err
		}
	}

	res := &GameResult{
		GameID:     r.game.Uid(),
		WentFirst:  first,
		Scores:     [2]int{r.game.ScoreFor(board.Player0), r.game.ScoreFor(board.Player1)},
		Turns:      r.game.Turn(),
		FinalBoard: r.game.Board(),
	}
	winner, ok := r.game.Winner()
	res.Winner, res.Tie = winner, !ok
	log.Debug().Str("gid", res.GameID).Ints("scores", res.Scores[:]).Msg("game-over")
	return res, nil
}

func (r *GameRunner) playTurn(ctx context.Context) error {
	onturn := r.game.PlayerOnTurn()
	var pit int
	var err error
	if r.game.Turn() < r.randomPlies {
		moves := r.game.LegalMoves()
		pit = moves[r.randIntn(len(moves))]
	} else {
		pit, err = r.aiplayers[onturn].ChooseMove(ctx, r.game)
		if err != nil {
			return err
		}
	}
	out, err := r.game.PlayMove(pit)
	if err != nil {
		return err
	}
	if r.logchan != nil {
		b := r.game.Board()
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v\n",
			r.game.NameFor(onturn),
			r.game.Uid(),
			r.game.Turn(),
			pit,
			out.ExtraTurn,
			out.Captured,
			b.Store(onturn),
			b.Store(board.Opponent(onturn)))
	}
	return nil
}

// Game returns the game most recently played.
func (r *GameRunner) Game() *game.Game {
	return r.game
}
