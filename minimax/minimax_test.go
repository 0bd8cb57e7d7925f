package minimax

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/mancala/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

var searchBoards = []board.Board{
	board.New(4),
	board.New(3),
	{1, 0, 3, 0, 0, 1, 10, 0, 4, 0, 0, 2, 1, 12},
	{0, 5, 0, 2, 1, 0, 14, 3, 0, 6, 0, 1, 0, 16},
	{2, 2, 0, 0, 7, 1, 9, 1, 1, 0, 5, 0, 3, 17},
	{0, 0, 0, 1, 0, 2, 20, 3, 0, 0, 0, 0, 0, 18},
}

func TestPruningMatchesExhaustive(t *testing.T) {
	is := is.New(t)
	for _, d := range Difficulties() {
		for _, b := range searchBoards {
			for _, p := range []board.Player{board.Player0, board.Player1} {
				pruned := NewSolver(d)
				pruned.SetMaxDepth(4)
				full := NewSolver(d)
				full.SetMaxDepth(4)
				full.SetPruningDisabled(true)

				r1, err := pruned.Solve(context.Background(), b, p)
				is.NoErr(err)
				r2, err := full.Solve(context.Background(), b, p)
				is.NoErr(err)

				is.Equal(r1.Move, r2.Move)
				is.Equal(r1.Score, r2.Score)
				is.Equal(len(r1.Scores), len(r2.Scores))
				for i := range r1.Scores {
					is.Equal(r1.Scores[i].Pit, r2.Scores[i].Pit)
					is.Equal(r1.Scores[i].Score, r2.Scores[i].Score)
				}
				is.True(r1.Nodes <= r2.Nodes)
			}
		}
	}
}

func TestPrefersCapture(t *testing.T) {
	is := is.New(t)
	s := NewSolver(Easy)
	s.SetMaxDepth(0)
	// Pit 0 lands on a full pit; pit 1 lands in empty pit 2 and captures
	// the stone in pit 10.
	b := board.Board{1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0}
	m, err := s.FindBestMove(b, board.Player0)
	is.NoErr(err)
	is.Equal(m, 1)
}

func TestTieGoesToLowerPit(t *testing.T) {
	is := is.New(t)
	s := NewSolver(Easy)
	s.SetMaxDepth(0)
	// Both moves capture one opposing stone.
	b := board.Board{1, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0}
	res, err := s.Solve(context.Background(), b, board.Player0)
	is.NoErr(err)
	is.Equal(res.Move, 0)
	is.Equal(res.Scores[0].Score, res.Scores[1].Score)
}

func TestExtraTurnKeepsRole(t *testing.T) {
	is := is.New(t)
	s := NewSolver(Easy)
	s.SetMaxDepth(1)
	b := board.Board{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 5, 0}
	res, err := s.Solve(context.Background(), b, board.Player0)
	is.NoErr(err)
	// Pit 5 earns another move, and with it we play pit 4 ourselves for
	// a score of 1. Had the opponent moved instead, the score would be 0.
	is.Equal(res.Move, 5)
	is.Equal(res.Score, 1.0)
	is.True(res.Scores[1].ExtraTurn)
	is.Equal(res.Scores[0].Score, -1.0)
}

func TestNoLegalMove(t *testing.T) {
	is := is.New(t)
	s := NewSolver(Hard)
	b := board.Board{0, 0, 0, 0, 0, 0, 20, 1, 2, 0, 0, 0, 3, 22}
	m, err := s.FindBestMove(b, board.Player0)
	is.NoErr(err)
	is.Equal(m, board.NoMove)

	m, err = s.FindBestMove(b, board.Player1)
	is.NoErr(err)
	is.True(m >= 7 && m <= 12)
}

func TestBadInput(t *testing.T) {
	is := is.New(t)
	s := NewSolver(Medium)
	b := board.New(4)
	b[3] = -2
	_, err := s.FindBestMove(b, board.Player0)
	is.True(errors.Is(err, board.ErrMalformedBoard))

	_, err = s.FindBestMove(board.New(4), board.Player(5))
	is.True(errors.Is(err, board.ErrInvalidPlayer))
}

func TestMoveIsAlwaysLegal(t *testing.T) {
	is := is.New(t)
	for _, d := range []Difficulty{Easy, Medium} {
		s := NewSolver(d)
		for _, b := range searchBoards {
			for _, p := range []board.Player{board.Player0, board.Player1} {
				orig := b
				m, err := s.FindBestMove(b, p)
				is.NoErr(err)
				is.Equal(b, orig)
				if b.HasMoves(p) {
					is.NoErr(b.ValidateMove(p, m))
				} else {
					is.Equal(m, board.NoMove)
				}
			}
		}
	}
}

func TestCancelledContext(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSolver(Expert)
	_, err := s.Solve(ctx, board.New(4), board.Player0)
	is.True(errors.Is(err, context.Canceled))
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	s := NewSolver(Easy)
	s.SetLogStream(&buf)
	res, err := s.Solve(context.Background(), board.New(4), board.Player0)
	is.NoErr(err)

	var logged []MoveScore
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &logged))
	is.Equal(len(logged), 6)
	is.Equal(logged[2].Pit, 2)
	// Four stones from pit 2 reach the store.
	is.True(logged[2].ExtraTurn)
	is.Equal(logged[res.Move].Score, res.Score)
}

func TestDifficulty(t *testing.T) {
	is := is.New(t)
	d, err := ParseDifficulty("Expert")
	is.NoErr(err)
	is.Equal(d, Expert)
	is.Equal(d.MaxDepth(), 10)
	is.Equal(d.Evaluator().Name(), "staged")

	d, err = ParseDifficulty("nightmare")
	is.True(err != nil)
	is.Equal(d, DefaultDifficulty)

	is.Equal(Easy.MaxDepth(), 2)
	is.Equal(Medium.MaxDepth(), 5)
	is.Equal(Hard.MaxDepth(), 8)

	s := NewSolver(Difficulty(42))
	is.Equal(s.Difficulty(), DefaultDifficulty)
	is.Equal(s.MaxDepth(), 5)
	s.SetDifficulty(Hard)
	is.Equal(s.MaxDepth(), 8)
}
