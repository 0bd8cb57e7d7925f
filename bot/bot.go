// Package bot serves move requests over NATS. Requests and replies are
// JSON.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/kpn"
	"github.com/domino14/mancala/minimax"
)

// Request asks for a move. Either Position (a KPN string) or Board and
// Player must be set. Difficulty overrides the bot's default, and a
// "diff" operation in Position overrides both.
type Request struct {
	Position   string `json:"position,omitempty"`
	Board      []int  `json:"board,omitempty"`
	Player     *int   `json:"player,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	GameID     string `json:"gameId,omitempty"`
}

// Response carries the chosen move, or Error. Move is board.NoMove when
// the player had no legal move.
type Response struct {
	Move       int                 `json:"move"`
	Score      float64             `json:"score"`
	PV         []int               `json:"pv,omitempty"`
	Scores     []minimax.MoveScore `json:"scores,omitempty"`
	Difficulty string              `json:"difficulty,omitempty"`
	GameID     string              `json:"gameId,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type Bot struct {
	difficulty minimax.Difficulty
	timeout    time.Duration
}

// NewBot makes a bot that searches at d unless a request says otherwise.
// A zero timeout means searches are never cut short.
func NewBot(d minimax.Difficulty, timeout time.Duration) *Bot {
	return &Bot{difficulty: d, timeout: timeout}
}

func errorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Move: board.NoMove, Error: msg}
}

type position struct {
	board      board.Board
	player     board.Player
	difficulty minimax.Difficulty
	gameID     string
}

// deserialize turns a request payload into a position to search.
func (bot *Bot) deserialize(data []byte) (*position, error) {
	req := Request{}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	pos := &position{difficulty: bot.difficulty, gameID: req.GameID}

	if req.Difficulty != "" {
		d, err := minimax.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, err
		}
		pos.difficulty = d
	}

	switch {
	case req.Position != "":
		if len(req.Board) > 0 {
			return nil, errors.New("give either a position or a board, not both")
		}
		parsed, err := kpn.ParseKPN(req.Position)
		if err != nil {
			return nil, err
		}
		pos.board = parsed.Board()
		pos.player = parsed.PlayerOnTurn()
		if diff, ok := parsed.Opcodes["diff"]; ok {
			d, err := minimax.ParseDifficulty(diff)
			if err != nil {
				return nil, err
			}
			pos.difficulty = d
		}
		if gid, ok := parsed.Opcodes["gid"]; ok && pos.gameID == "" {
			pos.gameID = gid
		}
	case len(req.Board) > 0:
		if req.Player == nil {
			return nil, errors.New("board given without a player")
		}
		b, err := board.FromSlice(req.Board)
		if err != nil {
			return nil, err
		}
		pos.board = b
		pos.player = board.Player(*req.Player)
	default:
		return nil, errors.New("request has no position")
	}
	return pos, nil
}

func (bot *Bot) handle(ctx context.Context, data []byte) *Response {
	pos, err := bot.deserialize(data)
	if err != nil {
		return errorResponse("could not parse request", err)
	}
	if bot.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bot.timeout)
		defer cancel()
	}
	solver := minimax.NewSolver(pos.difficulty)
	res, err := solver.Solve(ctx, pos.board, pos.player)
	if err != nil {
		return errorResponse("could not search position", err)
	}
	log.Info().Str("gid", pos.gameID).Int("move", res.Move).Float64("score", res.Score).
		Str("difficulty", pos.difficulty.String()).Msg("generated-move")
	return &Response{
		Move:       res.Move,
		Score:      res.Score,
		PV:         res.PV.Moves,
		Scores:     res.Scores,
		Difficulty: pos.difficulty.String(),
		GameID:     pos.gameID,
	}
}

// Serve answers requests on subject until ctx is done. Requests on one
// subscription are handled one at a time.
func (bot *Bot) Serve(ctx context.Context, nc *nats.Conn, subject string) error {
	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Info().Int("bytes", len(m.Data)).Msg("recv")
		resp := bot.handle(ctx, m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			data = []byte(err.Error())
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-error")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Str("subject", subject).Msg("listening")

	<-ctx.Done()
	log.Info().Msg("draining-subscription")
	return sub.Drain()
}
