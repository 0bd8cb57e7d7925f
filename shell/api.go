package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/mancala/ai/turnplayer"
	"github.com/domino14/mancala/automatic"
	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/bot"
	"github.com/domino14/mancala/config"
	"github.com/domino14/mancala/equity"
	"github.com/domino14/mancala/game"
	"github.com/domino14/mancala/kpn"
	"github.com/domino14/mancala/minimax"
)

type Response struct {
	message string
}

// Message is the text the command printed.
func (r *Response) Message() string {
	if r == nil {
		return ""
	}
	return r.message
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	stones, err := cmd.options.IntDefault("stones", sc.stonesPerPit)
	if err != nil {
		return nil, err
	}
	first, err := cmd.options.IntDefault("first", 0)
	if err != nil {
		return nil, err
	}
	names := [2]string{"you", "you"}
	names[sc.aiSide] = sc.aiplayer.Name()
	g, err := game.NewGame(game.Options{
		StonesPerPit: stones,
		FirstPlayer:  board.Player(first),
		Names:        names,
	})
	if err != nil {
		return nil, err
	}
	sc.game = g
	return sc.afterMove("")
}

// afterMove lets the computer take its turns, if it is on turn and
// auto-reply is on, then shows the position.
func (sc *ShellController) afterMove(prefix string) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(prefix)
	for sc.autoReply && sc.IsAIOnTurn() {
		pit, out, err := turnplayer.PlayTurn(context.Background(), sc.game, sc.aiplayer)
		if err != nil {
			return nil, err
		}
		sb.WriteString(describeMove(sc.aiplayer.Name(), pit, out))
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func describeMove(who string, pit int, out board.MoveOutcome) string {
	s := fmt.Sprintf("%s plays pit %d", who, pit)
	if out.Captured > 0 {
		s += fmt.Sprintf(", capturing %d", out.Captured)
	}
	if out.ExtraTurn {
		s += " and goes again"
	}
	return s + "\n"
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <pit>")
	}
	if sc.autoReply && sc.IsAIOnTurn() {
		return nil, errors.New("it is the computer's turn; use ai")
	}
	pit, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	out, err := sc.game.PlayMove(pit)
	if err != nil {
		return nil, err
	}
	return sc.afterMove(describeMove("you", pit, out))
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errors.New("game is over")
	}
	pit, out, err := turnplayer.PlayTurn(context.Background(), sc.game, sc.aiplayer)
	if err != nil {
		return nil, err
	}
	return sc.afterMove(describeMove(sc.aiplayer.Name(), pit, out))
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errors.New("game is over")
	}
	pit, err := sc.aiplayer.ChooseMove(context.Background(), sc.game)
	if err != nil {
		return nil, err
	}
	res := sc.aiplayer.LastResult()
	return msg(fmt.Sprintf("%s suggests pit %d (score %.2f)\n%s",
		sc.aiplayer.Name(), pit, res.Score, res.PV.String())), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	b := sc.game.Board()
	p := sc.game.PlayerOnTurn()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Position for %v (stage %v)\n", p, equity.GameStage(&b))
	fmt.Fprintf(&sb, "  extra-turn moves: %d  capture potential: %d\n",
		equity.ExtraTurnPotential(&b, p), equity.CapturePotential(&b, p))
	for _, d := range minimax.Difficulties() {
		e := d.Evaluator()
		fmt.Fprintf(&sb, "  %-8s %-12s %8.2f\n", d, e.Name(), e.Evaluate(&b, p))
	}
	return msg(sb.String()), nil
}

// solveCurrent searches the current position with a solver configured from
// the command's options.
func (sc *ShellController) solveCurrent(cmd *shellcmd) (*minimax.Result, *minimax.Solver, error) {
	if sc.game == nil {
		return nil, nil, errNoGame
	}
	d := sc.aiplayer.Difficulty()
	if ds := cmd.options.String("difficulty"); ds != "" {
		var err error
		if d, err = minimax.ParseDifficulty(ds); err != nil {
			return nil, nil, err
		}
	}
	solver := minimax.NewSolver(d)
	if depth, err := cmd.options.IntDefault("depth", 0); err != nil {
		return nil, nil, err
	} else if depth > 0 {
		solver.SetMaxDepth(depth)
	}
	solver.SetPruningDisabled(cmd.options.Bool("nopruning"))
	if logfile := cmd.options.String("log"); logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		solver.SetLogStream(f)
	}
	res, err := solver.Solve(context.Background(), sc.game.Board(), sc.game.PlayerOnTurn())
	if err != nil {
		return nil, nil, err
	}
	return res, solver, nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	res, solver, err := sc.solveCurrent(cmd)
	if err != nil {
		return nil, err
	}
	if res.Move == board.NoMove {
		return msg("no legal moves"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s%-8s%s\n", "Pit", "Extra", "Score")
	for _, ms := range res.Scores {
		fmt.Fprintf(&sb, "%-6d%-8v%.2f\n", ms.Pit, ms.ExtraTurn, ms.Score)
	}
	sb.WriteString(res.PV.String())
	fmt.Fprintf(&sb, "Best: pit %d. %d nodes in %s (depth %d)\n",
		res.Move, res.Nodes, res.Elapsed.Round(time.Millisecond), solver.MaxDepth())
	return msg(sb.String()), nil
}

// Settings the set command understands.
var settingNames = []string{"difficulty", "aiplayer", "autoreply", "stones"}

func (sc *ShellController) settingValue(key string) (string, error) {
	switch key {
	case "difficulty":
		return sc.aiplayer.Difficulty().String(), nil
	case "aiplayer":
		return strconv.Itoa(int(sc.aiSide)), nil
	case "autoreply":
		return strconv.FormatBool(sc.autoReply), nil
	case "stones":
		return strconv.Itoa(sc.stonesPerPit), nil
	}
	return "", fmt.Errorf("no such option: %s", key)
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		lines := lo.Map(settingNames, func(k string, _ int) string {
			v, _ := sc.settingValue(k)
			return "  " + k + ": " + v
		})
		return msg("Settings:\n" + strings.Join(lines, "\n")), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		v, err := sc.settingValue(key)
		if err != nil {
			return nil, err
		}
		return msg(v), nil
	}
	value := cmd.args[1]
	switch key {
	case "difficulty":
		d, err := minimax.ParseDifficulty(value)
		if err != nil {
			return nil, err
		}
		sc.aiplayer.SetDifficulty(d)
		if sc.game != nil {
			sc.game.SetNameFor(sc.aiSide, sc.aiplayer.Name())
		}
	case "aiplayer":
		p, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if !board.Player(p).Valid() {
			return nil, board.ErrInvalidPlayer
		}
		sc.aiSide = board.Player(p)
	case "autoreply":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.autoReply = b
	case "stones":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, errors.New("stones must be positive")
		}
		sc.stonesPerPit = n
	default:
		return nil, fmt.Errorf("no such option: %s", key)
	}
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <kpn>")
	}
	// A KPN has spaces in it; take the whole rest of the line.
	parsed, err := kpn.ParseKPN(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if diff, ok := parsed.Opcodes["diff"]; ok {
		d, err := minimax.ParseDifficulty(diff)
		if err != nil {
			return nil, err
		}
		sc.aiplayer.SetDifficulty(d)
	}
	sc.game = parsed.Game
	sc.game.SetNameFor(sc.aiSide, sc.aiplayer.Name())
	sc.game.SetNameFor(board.Opponent(sc.aiSide), "you")
	return sc.afterMove("")
}

func (sc *ShellController) kpn(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(kpn.ToKPN(sc.game)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	opts := automatic.Options{
		Player1:     sc.aiplayer.Difficulty().String(),
		Player2:     sc.aiplayer.Difficulty().String(),
		GameLogFile: cmd.options.String("log"),
	}
	if p := cmd.options.String("p1"); p != "" {
		opts.Player1 = p
	}
	if p := cmd.options.String("p2"); p != "" {
		opts.Player2 = p
	}
	var err error
	if opts.NumGames, err = cmd.options.IntDefault("games", 100); err != nil {
		return nil, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", 1); err != nil {
		return nil, err
	}
	if opts.RandomPlies, err = cmd.options.IntDefault("random-plies", 2); err != nil {
		return nil, err
	}
	if opts.StonesPerPit, err = cmd.options.IntDefault("stones", sc.stonesPerPit); err != nil {
		return nil, err
	}
	if seedfile := cmd.options.String("seeds"); seedfile != "" {
		if opts.Seeds, err = automatic.LoadSeeds(seedfile); err != nil {
			return nil, err
		}
	}

	res, err := automatic.CompVsComp(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	var hist bytes.Buffer
	if err := res.FprintHistogram(&hist, 10); err != nil {
		log.Err(err).Msg("histogram-error")
	}
	return msg(res.String() + "Spread distribution:\n" + hist.String()), nil
}

// remote asks a bot over NATS for a move in the current position and
// plays it.
func (sc *ShellController) remote(cmd *shellcmd) (*Response, error) {
	if !sc.IsPlaying() {
		return nil, errors.New("game is over")
	}
	nc, err := nats.Connect(sc.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	timeout := sc.config.GetDuration(config.ConfigBotTimeout)
	client := bot.NewClient(nc, sc.config.GetString(config.ConfigBotSubject), timeout+5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 4*timeout)
	defer cancel()
	resp, err := client.RequestMove(ctx, &bot.Request{
		Position:   kpn.ToKPN(sc.game),
		Difficulty: cmd.options.String("difficulty"),
		GameID:     sc.game.Uid(),
	})
	if err != nil {
		return nil, err
	}
	if resp.Move == board.NoMove {
		return nil, turnplayer.ErrNoMove
	}
	out, err := sc.game.PlayMove(resp.Move)
	if err != nil {
		return nil, err
	}
	return sc.afterMove(describeMove("bot ("+resp.Difficulty+")", resp.Move, out))
}
