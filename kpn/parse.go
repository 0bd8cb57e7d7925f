// Package kpn reads and writes Kalah position notation, a one-line text
// form of a position:
//
//	4,4,4,4,4,4/4,4,4,4,4,4 0/0 0 ;diff hard; gid abc;
//
// The fields are player 0's pits (0-5) and player 1's pits (7-12) in
// sowing order, the two stores, the player on turn, and optional
// semicolon-separated operations.
package kpn

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/game"
)

var ErrBadKPN = errors.New("bad kpn")

type ParsedKPN struct {
	*game.Game
	Opcodes map[string]string
}

// Operations that are kept; each takes one parameter.
var knownOps = map[string]bool{
	"diff": true,
	"gid":  true,
}

// ParseKPN returns an instantiated Game from the given KPN string.
func ParseKPN(kpnstr string) (*ParsedKPN, error) {
	fields := strings.SplitN(strings.TrimSpace(kpnstr), " ", 4)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: must have at least 3 space-separated fields", ErrBadKPN)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != 2 {
		return nil, fmt.Errorf("%w: need two rows of pits", ErrBadKPN)
	}
	stores := strings.Split(fields[1], "/")
	if len(stores) != 2 {
		return nil, fmt.Errorf("%w: need two stores", ErrBadKPN)
	}

	var b board.Board
	for p, row := range rows {
		pits, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		copy(b[board.RowStart(board.Player(p)):], pits)
	}
	for p, s := range stores {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: store %q: %v", ErrBadKPN, s, err)
		}
		b[board.StoreIndex(board.Player(p))] = n
	}

	onturn, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: player on turn %q: %v", ErrBadKPN, fields[2], err)
	}

	opcodes := map[string]string{}
	if len(fields) == 4 {
		for _, op := range strings.Split(fields[3], ";") {
			op := strings.TrimSpace(op)
			if len(op) == 0 {
				continue
			}
			opWithParams := strings.SplitN(op, " ", 2)
			if !knownOps[opWithParams[0]] {
				log.Debug().Str("op", opWithParams[0]).Msg("ignoring-unknown-kpn-op")
				continue
			}
			if len(opWithParams) != 2 {
				return nil, fmt.Errorf("%w: wrong number of arguments for %s operation",
					ErrBadKPN, opWithParams[0])
			}
			opcodes[opWithParams[0]] = strings.TrimSpace(opWithParams[1])
		}
	}

	g, err := game.NewFromBoard(b, board.Player(onturn))
	if err != nil {
		return nil, err
	}
	if gid, ok := opcodes["gid"]; ok {
		g.SetUid(gid)
	}
	log.Debug().Str("board", b.String()).Int("onturn", onturn).Msg("parsed-kpn")
	return &ParsedKPN{Game: g, Opcodes: opcodes}, nil
}

func parseRow(row string) ([]int, error) {
	parts := strings.Split(row, ",")
	if len(parts) != board.PitsPerSide {
		return nil, fmt.Errorf("%w: row %q must have %d pits", ErrBadKPN, row, board.PitsPerSide)
	}
	pits := make([]int, board.PitsPerSide)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: pit %q: %v", ErrBadKPN, p, err)
		}
		pits[i] = n
	}
	return pits, nil
}

// ToKPN writes the position of g without any operations.
func ToKPN(g *game.Game) string {
	b := g.Board()
	rows := make([]string, 2)
	for p := board.Player0; p <= board.Player1; p++ {
		start := board.RowStart(p)
		strs := make([]string, board.PitsPerSide)
		for i := 0; i < board.PitsPerSide; i++ {
			strs[i] = strconv.Itoa(b[start+i])
		}
		rows[p] = strings.Join(strs, ",")
	}
	return fmt.Sprintf("%s/%s %d/%d %d", rows[0], rows[1],
		b.Store(board.Player0), b.Store(board.Player1), int(g.PlayerOnTurn()))
}

// String writes the position along with its operations, sorted by name.
func (p *ParsedKPN) String() string {
	s := ToKPN(p.Game)
	if len(p.Opcodes) == 0 {
		return s
	}
	keys := make([]string, 0, len(p.Opcodes))
	for k := range p.Opcodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(s)
	sb.WriteString(" ;")
	for _, k := range keys {
		sb.WriteString(k + " " + p.Opcodes[k] + ";")
	}
	return sb.String()
}
