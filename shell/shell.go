// Package shell is an interactive prompt for playing against the computer
// and poking at its search.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/ai/turnplayer"
	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/config"
	"github.com/domino14/mancala/game"
	"github.com/domino14/mancala/minimax"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first (new or load)")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 && !isNumber(fields[idx]) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func isNumber(s string) bool {
	for i, r := range s {
		if i == 0 && r == '-' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game     *game.Game
	aiplayer *turnplayer.AIPlayer
	// The side the computer plays. Moves for the other side come from the
	// user.
	aiSide    board.Player
	autoReply bool

	stonesPerPit int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewShellController sets up a controller with a readline prompt.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mmancala>\033[0m ",
		HistoryFile:     "/tmp/mancala_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

// newController builds a controller that writes to out and reads no input.
func newController(cfg *config.Config, out io.Writer) *ShellController {
	d, err := minimax.ParseDifficulty(cfg.GetString(config.ConfigDifficulty))
	if err != nil {
		log.Warn().Err(err).Msg("bad-difficulty-in-config")
	}
	aiSide := board.Player(cfg.GetInt(config.ConfigAIPlayer))
	if !aiSide.Valid() {
		log.Warn().Int("ai-player", int(aiSide)).Msg("bad-ai-player-in-config")
		aiSide = board.Player1
	}
	return &ShellController{
		out:          out,
		config:       cfg,
		aiplayer:     turnplayer.NewAIPlayer(d),
		aiSide:       aiSide,
		autoReply:    true,
		stonesPerPit: cfg.GetInt(config.ConfigStonesPerPit),
	}
}

func (sc *ShellController) IsPlaying() bool {
	return sc.game != nil && sc.game.Playing() == game.Playing
}

func (sc *ShellController) IsAIOnTurn() bool {
	return sc.IsPlaying() && sc.game.PlayerOnTurn() == sc.aiSide
}

// Execute runs one command line and returns what it printed.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.dispatch(cmd)
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help", "h":
		return sc.help(cmd)
	case "new", "n":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai", "aiplay", "a":
		return sc.aiplay(cmd)
	case "hint":
		return sc.hint(cmd)
	case "eval":
		return sc.eval(cmd)
	case "solve":
		return sc.solve(cmd)
	case "set":
		return sc.set(cmd)
	case "load":
		return sc.load(cmd)
	case "kpn":
		return sc.kpn(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "remote":
		return sc.remote(cmd)
	case "script":
		return sc.script(cmd)
	default:
		msg := fmt.Sprintf("command %q not found", cmd.cmd)
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.Execute(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
