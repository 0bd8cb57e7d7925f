package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/mancala/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -log /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"log": {"/path/to/log.txt"}}},
			nil},
		{"play 3",
			&shellcmd{"play", []string{"3"}, CmdOptions{}},
			nil},
		{"set difficulty hard -x 1 -x 2 ",
			&shellcmd{"set",
				[]string{"difficulty", "hard"},
				CmdOptions{"x": {"1", "2"}}},
			nil,
		},
		{"set stones -4",
			&shellcmd{"set", []string{"stones", "-4"}, CmdOptions{}},
			nil},
		{"load '4,4,4,4,4,4/4,4,4,4,4,4 0/0 0'",
			&shellcmd{"load", []string{"4,4,4,4,4,4/4,4,4,4,4,4 0/0 0"}, CmdOptions{}},
			nil},
		{"solve -depth",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDifficulty, "easy")
	return newController(cfg, &buf), &buf
}

func TestNeedsGame(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	for _, line := range []string{"show", "play 0", "kpn", "eval", "solve"} {
		_, err := sc.Execute(line)
		is.Equal(err, errNoGame)
	}
	_, err := sc.Execute("frobnicate")
	is.True(err != nil)
}

func TestNewAndPlay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()

	resp, err := sc.Execute("new")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "to move (turn 1)"))
	is.True(sc.IsPlaying())
	is.True(!sc.IsAIOnTurn())

	// Pit 2 ends in the store, so it is still our turn.
	resp, err = sc.Execute("play 2")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "you plays pit 2 and goes again"))
	resp, err = sc.Execute("kpn")
	is.NoErr(err)
	is.Equal(resp.message, "4,4,0,5,5,5/4,4,4,4,4,4 1/0 0")

	// Pit 0 hands the turn over; the computer answers on its own.
	resp, err = sc.Execute("play 0")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "minimax-easy plays pit"))
	is.True(!sc.IsAIOnTurn())

	_, err = sc.Execute("play 7")
	is.True(err != nil)
	_, err = sc.Execute("play")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()

	resp, err := sc.Execute("set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "difficulty: easy"))
	is.True(strings.Contains(resp.message, "autoreply: true"))

	_, err = sc.Execute("set difficulty hard")
	is.NoErr(err)
	resp, err = sc.Execute("set difficulty")
	is.NoErr(err)
	is.Equal(resp.message, "hard")
	is.Equal(sc.aiplayer.Name(), "minimax-hard")

	_, err = sc.Execute("set difficulty impossible")
	is.True(err != nil)
	_, err = sc.Execute("set stones 0")
	is.True(err != nil)
	_, err = sc.Execute("set aiplayer 2")
	is.True(err != nil)
	_, err = sc.Execute("set colour blue")
	is.True(err != nil)

	_, err = sc.Execute("set stones 6")
	is.NoErr(err)
	_, err = sc.Execute("set autoreply false")
	is.NoErr(err)
	_, err = sc.Execute("new")
	is.NoErr(err)
	resp, err = sc.Execute("kpn")
	is.NoErr(err)
	is.Equal(resp.message, "6,6,6,6,6,6/6,6,6,6,6,6 0/0 0")
}

func TestLoadAndAnalyze(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	_, err := sc.Execute("set autoreply false")
	is.NoErr(err)

	pos := "4,4,0,5,5,0/5,5,5,5,4,4 2/0 1"
	_, err = sc.Execute("load " + pos)
	is.NoErr(err)
	resp, err := sc.Execute("kpn")
	is.NoErr(err)
	is.Equal(resp.message, pos)
	is.Equal(sc.game.NameFor(sc.aiSide), "minimax-easy")

	resp, err = sc.Execute("eval")
	is.NoErr(err)
	for _, name := range []string{"store-diff", "pit-balance", "tactical", "staged"} {
		is.True(strings.Contains(resp.message, name))
	}

	resp, err = sc.Execute("solve -depth 2 -difficulty medium")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Best: pit"))
	is.True(strings.Contains(resp.message, "(depth 2)"))

	resp, err = sc.Execute("hint")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "minimax-easy suggests pit"))

	// The kpn can carry a difficulty for the computer.
	_, err = sc.Execute("load 4,4,4,4,4,4/4,4,4,4,4,4 0/0 0 ;diff expert;")
	is.NoErr(err)
	is.Equal(sc.aiplayer.Difficulty().String(), "expert")

	_, err = sc.Execute("load nonsense")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	resp, err := sc.Execute("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))
	resp, err = sc.Execute("help solve")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "-nopruning"))
	resp, err = sc.Execute("help bogus")
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic bogus")
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	logfile := filepath.Join(t.TempDir(), "games.txt")
	resp, err := sc.Execute("autoplay -games 4 -threads 2 -p1 random -p2 easy -log " + logfile)
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Spread distribution"))
	_, err = os.Stat(logfile)
	is.NoErr(err)

	_, err = sc.Execute("autoplay -p1 nobody")
	is.True(err != nil)
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	dir := t.TempDir()

	script := filepath.Join(dir, "play.lua")
	is.NoErr(os.WriteFile(script, []byte(`
mancala_set("autoreply false")
mancala_new("-stones 3")
assert(mancala_winner() == nil)
local pit, score = mancala_best("-depth 2")
assert(pit >= 0 and pit <= 5, "bad pit " .. tostring(pit))
mancala_play(pit)
local res, err = mancala_play("99")
assert(res == nil and err ~= nil)
local json = require("json")
local doc = json.decode(json.encode({kpn = mancala_kpn()}))
assert(string.find(doc.kpn, "/"))
while mancala_winner() == nil do
  mancala_ai()
end
`), 0o644))
	_, err := sc.Execute("script " + script)
	is.NoErr(err)
	is.True(!sc.IsPlaying())

	bad := filepath.Join(dir, "bad.lua")
	is.NoErr(os.WriteFile(bad, []byte(`error("boom")`), 0o644))
	_, err = sc.Execute("script " + bad)
	is.True(err != nil)

	_, err = sc.Execute("script")
	is.True(err != nil)
	_, err = sc.Execute("script " + filepath.Join(dir, "missing.lua"))
	is.True(err != nil)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	c := NewShellCompleter(sc)

	line := []rune("sol")
	matches, n := c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("ve")})

	line = []rune("set difficulty ex")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("pert")})

	line = []rune("autoplay -thr")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("eads")})
}
