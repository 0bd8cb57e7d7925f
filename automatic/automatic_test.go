package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/domino14/mancala/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	r, err := NewGameRunner(nil, "easy", "random")
	is.NoErr(err)
	res, err := r.PlayGame(context.Background(), board.Player1)
	is.NoErr(err)
	is.Equal(res.Scores[0]+res.Scores[1], 48)
	is.Equal(res.WentFirst, board.Player1)
	is.True(res.Turns > 0)
	if !res.Tie {
		is.True(res.Scores[res.Winner] > res.Scores[board.Opponent(res.Winner)])
	}
	is.Equal(r.Game().NameFor(board.Player0), "minimax-easy-1")

	_, err = NewGameRunner(nil, "easy", "godlike")
	is.True(err != nil)
}

func TestSeededOpeningsRepeat(t *testing.T) {
	is := is.New(t)
	seed := GenerateSeeds(1)[0]
	var boards [2]board.Board
	for i := range boards {
		r, err := NewGameRunner(nil, "easy", "easy")
		is.NoErr(err)
		r.SetRandomPlies(4)
		r.SetSeed(seed)
		res, err := r.PlayGame(context.Background(), board.Player0)
		is.NoErr(err)
		boards[i] = res.FinalBoard
	}
	is.Equal(boards[0], boards[1])
}

func TestCompVsComp(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	gameLog := filepath.Join(dir, "games.csv")
	turnLog := filepath.Join(dir, "turns.csv")

	res, err := CompVsComp(context.Background(), Options{
		Player1:     "easy",
		Player2:     "random",
		NumGames:    10,
		Threads:     3,
		RandomPlies: 2,
		GameLogFile: gameLog,
		TurnLogFile: turnLog,
	})
	is.NoErr(err)
	is.Equal(res.Games, 10)
	is.Equal(res.Wins[0]+res.Wins[1]+res.Ties, 10)
	is.Equal(res.Scores[0].Iterations(), 10)
	is.True(IsPlaying.Value() == 0)
	is.Equal(CVCCounter.Value(), int64(10))

	var summary Summary
	out, err := res.YAML()
	is.NoErr(err)
	is.NoErr(yaml.Unmarshal(out, &summary))
	is.Equal(summary.Games, 10)
	is.Equal(summary.Players, [2]string{"easy", "random"})

	var hist bytes.Buffer
	is.NoErr(res.FprintHistogram(&hist, 5))
	is.True(hist.Len() > 0)

	analyzed, err := AnalyzeLogFile(gameLog)
	is.NoErr(err)
	is.Equal(analyzed.Players, res.Players)
	is.Equal(analyzed.Games, 10)
	is.Equal(analyzed.Wins, res.Wins)
	is.Equal(analyzed.FirstMoverWins, res.FirstMoverWins)
	is.True(analyzed.Turns.Mean() > 0)

	turns, err := os.ReadFile(turnLog)
	is.NoErr(err)
	is.True(bytes.Count(turns, []byte("\n")) > 10)
}

func TestCompVsCompErrors(t *testing.T) {
	is := is.New(t)
	_, err := CompVsComp(context.Background(), Options{Player1: "easy", Player2: "easy"})
	is.True(err != nil)
	_, err = CompVsComp(context.Background(), Options{Player1: "easy", Player2: "nope", NumGames: 1})
	is.True(err != nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := CompVsComp(ctx, Options{Player1: "easy", Player2: "easy", NumGames: 5})
	is.True(err == nil || err == context.Canceled)
	is.Equal(res.Games, 0)
}

func TestResults(t *testing.T) {
	is := is.New(t)
	r := NewResults("a", "b")
	r.Add(&GameResult{Scores: [2]int{30, 18}, Winner: board.Player0, WentFirst: board.Player0, Turns: 20})
	r.Add(&GameResult{Scores: [2]int{20, 28}, Winner: board.Player1, WentFirst: board.Player0, Turns: 22})
	r.Add(&GameResult{Scores: [2]int{24, 24}, Tie: true, WentFirst: board.Player1, Turns: 30})
	is.Equal(r.Wins, [2]int{1, 1})
	is.Equal(r.Ties, 1)
	is.Equal(r.FirstMoverWins, 1)
	assert.InDelta(t, 4.0/3.0, r.Spread.Mean(), 1e-9)
	is.Equal(r.Turns.Mean(), 24.0)
	is.Equal(r.WinRate(95).Rate, 0.5)
}

func TestSeedsFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(3)
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	is.NoErr(os.WriteFile(path, []byte("# c\nabc\n"), 0o644))
	_, err = LoadSeeds(path)
	is.True(err != nil)
}
