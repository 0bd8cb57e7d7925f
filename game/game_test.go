package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/matryer/is"

	"github.com/domino14/mancala/board"
)

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(Options{})
	is.NoErr(err)
	is.Equal(g.Board(), board.New(4))
	is.Equal(g.PlayerOnTurn(), board.Player0)
	is.Equal(g.Playing(), Playing)
	is.Equal(g.NameFor(board.Player1), "player2")
	_, err = uuid.Parse(g.Uid())
	is.NoErr(err)

	g, err = NewGame(Options{StonesPerPit: 6, FirstPlayer: board.Player1,
		Names: [2]string{"cesar", "jesse"}})
	is.NoErr(err)
	is.Equal(g.Board().TotalStones(), 72)
	is.Equal(g.PlayerOnTurn(), board.Player1)
	is.Equal(g.FirstPlayer(), board.Player1)
	is.Equal(g.NameFor(board.Player0), "cesar")

	_, err = NewGame(Options{FirstPlayer: board.Player(3)})
	is.True(errors.Is(err, board.ErrInvalidPlayer))
	_, err = NewGame(Options{StonesPerPit: -1})
	is.True(errors.Is(err, board.ErrMalformedBoard))
}

func TestTurnPassing(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(Options{})
	is.NoErr(err)

	// Four stones from pit 2 end in the store.
	out, err := g.PlayMove(2)
	is.NoErr(err)
	is.True(out.ExtraTurn)
	is.Equal(g.PlayerOnTurn(), board.Player0)
	is.Equal(g.Turn(), 1)

	out, err = g.PlayMove(0)
	is.NoErr(err)
	is.True(!out.ExtraTurn)
	is.Equal(g.PlayerOnTurn(), board.Player1)

	// Player 0's pits are not legal for player 1.
	_, err = g.PlayMove(3)
	is.True(errors.Is(err, board.ErrInvalidMove))
	is.Equal(g.PlayerOnTurn(), board.Player1)
	is.Equal(g.Turn(), 2)

	is.Equal(g.LastEvent().Pit, 0)
	is.Equal(g.StatsFor(board.Player0).ExtraTurns, 1)
	is.Equal(g.StatsFor(board.Player0).Turns, 2)
}

func TestGameEndsAndSweeps(t *testing.T) {
	is := is.New(t)
	g, err := NewFromBoard(board.Board{0, 0, 0, 0, 0, 1, 20, 2, 0, 0, 0, 4, 0, 21}, board.Player0)
	is.NoErr(err)
	out, err := g.PlayMove(5)
	is.NoErr(err)
	is.True(out.ExtraTurn)
	// Our row is empty now, so player 1's stones are swept to their store.
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.ScoreFor(board.Player0), 21)
	is.Equal(g.ScoreFor(board.Player1), 27)
	is.Equal(g.Spread(board.Player1), 6)
	w, ok := g.Winner()
	is.True(ok)
	is.Equal(w, board.Player1)
	is.Equal(g.LastEvent().After, g.Board())

	_, err = g.PlayMove(7)
	is.True(errors.Is(err, ErrGameOver))
	is.Equal(len(g.LegalMoves()), 0)
}

func TestNewFromTerminalBoard(t *testing.T) {
	is := is.New(t)
	g, err := NewFromBoard(board.Board{0, 0, 0, 0, 0, 0, 24, 0, 0, 0, 0, 0, 0, 24}, board.Player1)
	is.NoErr(err)
	is.Equal(g.Playing(), GameOver)
	_, ok := g.Winner()
	is.True(!ok)

	_, err = NewFromBoard(board.Board{-1}, board.Player0)
	is.True(errors.Is(err, board.ErrMalformedBoard))
}

func TestWinnerWhilePlaying(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(Options{})
	is.NoErr(err)
	_, ok := g.Winner()
	is.True(!ok)
}

func TestCopy(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(Options{})
	is.NoErr(err)
	_, err = g.PlayMove(1)
	is.NoErr(err)

	cp := g.Copy()
	is.Equal(cp.Uid(), g.Uid())
	_, err = cp.PlayMove(8)
	is.NoErr(err)
	is.Equal(g.Turn(), 1)
	is.Equal(cp.Turn(), 2)
	is.Equal(g.StatsFor(board.Player1).Turns, 0)
	is.Equal(g.LastEvent().Pit, 1)
	is.True(g.Board() != cp.Board())
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(Options{Names: [2]string{"alice", "bob"}})
	is.NoErr(err)
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "-> alice"))
	is.True(strings.Contains(txt, "alice to move"))

	_, err = g.PlayMove(2)
	is.NoErr(err)
	is.True(strings.Contains(g.ToDisplayText(), "sowed pit 2, extra turn"))
}
