// Package minimax picks moves with a depth-limited minimax search and
// alpha-beta pruning. Extra turns are modelled inside the tree: a move that
// earns another turn keeps the same role (maximizing or minimizing) at the
// next ply instead of flipping it.
package minimax

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/common"
	"github.com/domino14/mancala/equity"
)

// How many nodes to visit between context checks.
const cancelCheckInterval = 4096

// MoveScore is the minimax value of one root move.
type MoveScore struct {
	Pit       int     `yaml:"pit" json:"pit"`
	ExtraTurn bool    `yaml:"extra-turn" json:"extraTurn"`
	Score     float64 `yaml:"score" json:"score"`
	PV        []int   `yaml:"pv,flow" json:"pv"`
}

// Result is what Solve returns. Move is board.NoMove when the player had
// nothing legal.
type Result struct {
	Move    int
	Score   float64
	Scores  []MoveScore
	PV      common.PVLine
	Nodes   uint64
	Elapsed time.Duration
}

type Solver struct {
	difficulty Difficulty
	maxDepth   int
	evaluator  equity.Evaluator

	pruningDisabled bool
	solvingPlayer   board.Player
	nodes           atomic.Uint64

	logStream io.Writer
}

func NewSolver(d Difficulty) *Solver {
	s := &Solver{}
	s.SetDifficulty(d)
	return s
}

// SetDifficulty picks the depth and evaluator for d. Out-of-range values
// fall back to DefaultDifficulty.
func (s *Solver) SetDifficulty(d Difficulty) {
	if !d.Valid() {
		log.Warn().Int("difficulty", int(d)).Msg("invalid-difficulty-using-default")
		d = DefaultDifficulty
	}
	s.difficulty = d
	s.maxDepth = d.MaxDepth()
	s.evaluator = d.Evaluator()
}

func (s *Solver) Difficulty() Difficulty {
	return s.difficulty
}

func (s *Solver) MaxDepth() int {
	return s.maxDepth
}

// SetMaxDepth overrides the depth that came with the difficulty, keeping
// its evaluator.
func (s *Solver) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// SetPruningDisabled turns the search into plain exhaustive minimax. The
// chosen move must not change; only the node count does.
func (s *Solver) SetPruningDisabled(d bool) {
	s.pruningDisabled = d
}

// SetLogStream makes Solve write a YAML record of every root move to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes returns the number of positions visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// FindBestMove returns the pit player should sow from, or board.NoMove if
// player has no legal move. An error means the input itself was bad.
func (s *Solver) FindBestMove(b board.Board, player board.Player) (int, error) {
	res, err := s.Solve(context.Background(), b, player)
	if err != nil {
		return board.NoMove, err
	}
	return res.Move, nil
}

// Solve searches every legal root move of player and returns the best one
// along with the score of each. Root moves are searched in ascending pit
// order and only a strictly better score replaces the current best, so
// ties go to the lower pit.
func (s *Solver) Solve(ctx context.Context, b board.Board, player board.Player) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", board.ErrInvalidPlayer, int(player))
	}
	s.solvingPlayer = player
	s.nodes.Store(0)
	tstart := time.Now()

	log.Debug().
		Str("difficulty", s.difficulty.String()).
		Int("max-depth", s.maxDepth).
		Str("evaluator", s.evaluator.Name()).
		Str("board", b.String()).
		Int("player", int(player)).
		Msg("minimax-solve-config")

	res := &Result{Move: board.NoMove, Score: math.Inf(-1)}

	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		log.Debug().Int("player", int(player)).Msg("no-legal-moves")
		res.Score = s.evaluator.Evaluate(&b, player)
		return res, nil
	}

	g := errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		return s.searchRoot(ctx, &b, moves, res)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Nodes = s.nodes.Load()
	res.Elapsed = time.Since(tstart)

	if s.logStream != nil {
		out, err := yaml.Marshal(res.Scores)
		if err != nil {
			return nil, err
		}
		if _, err := s.logStream.Write(out); err != nil {
			return nil, err
		}
	}

	log.Debug().
		Int("best-move", res.Move).
		Float64("score", res.Score).
		Str("pv", res.PV.NLBString()).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

func (s *Solver) searchRoot(ctx context.Context, b *board.Board, moves []int, res *Result) error {
	childPV := common.PVLine{}
	for _, pit := range moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		child := *b
		out, err := child.ApplyMove(s.solvingPlayer, pit)
		if err != nil {
			return err
		}
		s.nodes.Add(1)
		// After our own move it is the opponent's turn (a minimizing ply)
		// unless the move earned us another one.
		score, err := s.minimax(ctx, &child, 0, math.Inf(-1), math.Inf(1), out.ExtraTurn, &childPV)
		if err != nil {
			return err
		}
		res.Scores = append(res.Scores, MoveScore{
			Pit:       pit,
			ExtraTurn: out.ExtraTurn,
			Score:     score,
			PV:        append([]int{pit}, childPV.Moves...),
		})
		if score > res.Score {
			res.Score = score
			res.Move = pit
			res.PV.Update(pit, childPV, score)
		}
		childPV.Clear()
	}
	return nil
}

func (s *Solver) minimax(ctx context.Context, b *board.Board, depth int, α, β float64,
	maximizing bool, pv *common.PVLine) (float64, error) {

	if s.nodes.Load()%cancelCheckInterval == 0 && ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if depth >= s.maxDepth || b.IsTerminal() {
		return s.evaluator.Evaluate(b, s.solvingPlayer), nil
	}

	onTurn := s.solvingPlayer
	if !maximizing {
		onTurn = board.Opponent(s.solvingPlayer)
	}
	moves := b.LegalMoves(onTurn)
	if len(moves) == 0 {
		// A stalled side is scored statically, same as a leaf.
		return s.evaluator.Evaluate(b, s.solvingPlayer), nil
	}

	childPV := common.PVLine{}
	bestValue := math.Inf(1)
	if maximizing {
		bestValue = math.Inf(-1)
	}

	for _, pit := range moves {
		child := *b
		out, err := child.ApplyMove(onTurn, pit)
		if err != nil {
			return 0, err
		}
		s.nodes.Add(1)

		nextMaximizing := !maximizing
		if out.ExtraTurn {
			nextMaximizing = maximizing
		}
		value, err := s.minimax(ctx, &child, depth+1, α, β, nextMaximizing, &childPV)
		if err != nil {
			return 0, err
		}

		if maximizing {
			if value > bestValue {
				bestValue = value
				pv.Update(pit, childPV, value)
			}
			if !s.pruningDisabled {
				if bestValue > β {
					break
				}
				α = math.Max(α, bestValue)
			}
		} else {
			if value < bestValue {
				bestValue = value
				pv.Update(pit, childPV, value)
			}
			if !s.pruningDisabled {
				if bestValue < α {
					break
				}
				β = math.Min(β, bestValue)
			}
		}
		childPV.Clear()
	}
	return bestValue, nil
}
