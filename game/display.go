package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board with each player's line next to their row, then the
// last move and the play state.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText()
	bts := strings.Split(bt, "\n")
	hpadding := 3

	log.Debug().Int("onturn", int(g.onturn)).Msg("todisplaytext")
	// Player 1's row is drawn on line 2, player 0's on line 4.
	addText(bts, 2, hpadding, g.players[board.Player1].stateString(
		g.playing == Playing && g.onturn == board.Player1))
	addText(bts, 4, hpadding, g.players[board.Player0].stateString(
		g.playing == Playing && g.onturn == board.Player0))

	var sb strings.Builder
	sb.WriteString(strings.Join(bts, "\n"))
	if g.lastEvent != nil {
		ev := g.lastEvent
		extra := ""
		if ev.Outcome.ExtraTurn {
			extra = ", extra turn"
		}
		if ev.Outcome.Captured > 0 {
			extra += fmt.Sprintf(", captured %d", ev.Outcome.Captured)
		}
		sb.WriteString(fmt.Sprintf("Last move: %s sowed pit %d%s\n",
			g.players[ev.Player].name, ev.Pit, extra))
	}
	if g.playing == GameOver {
		sb.WriteString(fmt.Sprintf("Game over. Final score %d - %d. ",
			g.board.Store(board.Player0), g.board.Store(board.Player1)))
		if w, ok := g.Winner(); ok {
			sb.WriteString(fmt.Sprintf("%s wins.\n", g.players[w].name))
		} else {
			sb.WriteString("It's a tie.\n")
		}
	} else {
		sb.WriteString(fmt.Sprintf("%s to move (turn %d).\n",
			g.players[g.onturn].name, g.turnnum+1))
	}
	return sb.String()
}
