// Package game runs a single Kalah game: whose turn it is, when the game
// ends, and who won. A Game doesn't care how it is played; human and
// computer moves both come in through PlayMove.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/board"
)

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	switch p {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("playstate(%d)", int(p))
}

var ErrGameOver = errors.New("game is over")

// Options configures NewGame. The zero value is a standard four-stone game
// with player 0 moving first.
type Options struct {
	StonesPerPit int
	FirstPlayer  board.Player
	Names        [2]string
}

// Event records one move that was played.
type Event struct {
	Turn    int
	Player  board.Player
	Pit     int
	Outcome board.MoveOutcome
	After   board.Board
}

type Game struct {
	board   board.Board
	playing PlayState

	uid       string
	wentfirst board.Player
	onturn    board.Player
	turnnum   int
	players   [2]*playerState

	lastEvent *Event
}

// NewGame is how one instantiates a brand new game.
func NewGame(opts Options) (*Game, error) {
	stones := opts.StonesPerPit
	if stones == 0 {
		stones = board.DefaultStonesPerPit
	}
	if stones < 0 {
		return nil, fmt.Errorf("%w: %d stones per pit", board.ErrMalformedBoard, stones)
	}
	return newGame(board.New(stones), opts.FirstPlayer, opts.Names)
}

// NewFromBoard starts a game from an arbitrary position with onturn to
// move. A position that is already terminal produces a finished game.
func NewFromBoard(b board.Board, onturn board.Player) (*Game, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return newGame(b, onturn, [2]string{})
}

func newGame(b board.Board, onturn board.Player, names [2]string) (*Game, error) {
	if !onturn.Valid() {
		return nil, fmt.Errorf("%w: %d", board.ErrInvalidPlayer, int(onturn))
	}
	g := &Game{
		board:     b,
		uid:       uuid.NewString(),
		wentfirst: onturn,
		onturn:    onturn,
	}
	for i := range g.players {
		name := names[i]
		if name == "" {
			name = fmt.Sprintf("player%d", i+1)
		}
		g.players[i] = newPlayerState(name)
	}
	g.checkGameOver()
	log.Debug().Str("gid", g.uid).Str("board", g.board.String()).
		Int("onturn", int(onturn)).Msg("new-game")
	return g, nil
}

// PlayMove sows pit for the player on turn. On an extra turn the same
// player stays on turn. When the board runs dry the remaining stones are
// swept into their owners' stores and the game ends.
func (g *Game) PlayMove(pit int) (board.MoveOutcome, error) {
	if g.playing == GameOver {
		return board.MoveOutcome{}, ErrGameOver
	}
	mover := g.onturn
	out, err := g.board.ApplyMove(mover, pit)
	if err != nil {
		return out, err
	}
	g.turnnum++
	g.players[mover].recordMove(out)
	g.lastEvent = &Event{
		Turn:    g.turnnum,
		Player:  mover,
		Pit:     pit,
		Outcome: out,
	}

	if !out.ExtraTurn {
		g.onturn = board.Opponent(mover)
	}
	g.checkGameOver()
	g.lastEvent.After = g.board

	log.Debug().Int("turn", g.turnnum).Int("player", int(mover)).Int("pit", pit).
		Bool("extra-turn", out.ExtraTurn).Int("captured", out.Captured).
		Str("board", g.board.String()).Msg("played-move")
	return out, nil
}

func (g *Game) checkGameOver() {
	if g.playing == GameOver || !g.board.IsTerminal() {
		return
	}
	g.board.Sweep()
	g.playing = GameOver
	log.Debug().Str("gid", g.uid).Int("p0", g.board.Store(board.Player0)).
		Int("p1", g.board.Store(board.Player1)).Msg("game-over")
}

// Winner returns the winning player; ok is false while the game is still
// being played or when it ended in a tie.
func (g *Game) Winner() (board.Player, bool) {
	if g.playing != GameOver {
		return board.Player0, false
	}
	return g.board.Winner()
}

// ScoreFor is the number of stones in p's store.
func (g *Game) ScoreFor(p board.Player) int {
	return g.board.Store(p)
}

// Spread is p's store minus the opponent's.
func (g *Game) Spread(p board.Player) int {
	return g.board.Spread(p)
}

// Copy returns a deep copy of the game, with the same id.
func (g *Game) Copy() *Game {
	cp := *g
	for i, ps := range g.players {
		pcopy := *ps
		cp.players[i] = &pcopy
	}
	if g.lastEvent != nil {
		ev := *g.lastEvent
		cp.lastEvent = &ev
	}
	return &cp
}

// Board returns a copy of the current position.
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) SetUid(uid string) {
	g.uid = uid
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) PlayerOnTurn() board.Player {
	return g.onturn
}

func (g *Game) FirstPlayer() board.Player {
	return g.wentfirst
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) LastEvent() *Event {
	return g.lastEvent
}

func (g *Game) NameFor(p board.Player) string {
	return g.players[p].name
}

func (g *Game) SetNameFor(p board.Player, name string) {
	g.players[p].name = name
}

// LegalMoves lists the pits the player on turn may sow. It is empty once
// the game is over.
func (g *Game) LegalMoves() []int {
	if g.playing == GameOver {
		return nil
	}
	return g.board.LegalMoves(g.onturn)
}
