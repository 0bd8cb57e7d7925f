package game

import (
	"fmt"

	"github.com/domino14/mancala/board"
)

type playerState struct {
	name string

	turns      int
	extraTurns int
	captures   int
	captured   int
}

func newPlayerState(name string) *playerState {
	return &playerState{name: name}
}

func (p *playerState) recordMove(out board.MoveOutcome) {
	p.turns++
	if out.ExtraTurn {
		p.extraTurns++
	}
	if out.Captured > 0 {
		p.captures++
		p.captured += out.Captured
	}
}

func (p *playerState) stateString(onturn bool) string {
	onturnMarker := ""
	if onturn {
		onturnMarker = "-> "
	}
	return fmt.Sprintf("%4s%-12s moves %-3d extra %-3d captures %d (%d stones)",
		onturnMarker, p.name, p.turns, p.extraTurns, p.captures, p.captured)
}

// PlayerStats summarizes how a player's moves went so far.
type PlayerStats struct {
	Turns      int `yaml:"turns" json:"turns"`
	ExtraTurns int `yaml:"extra-turns" json:"extraTurns"`
	Captures   int `yaml:"captures" json:"captures"`
	Captured   int `yaml:"captured-stones" json:"capturedStones"`
}

func (g *Game) StatsFor(p board.Player) PlayerStats {
	ps := g.players[p]
	return PlayerStats{
		Turns:      ps.turns,
		ExtraTurns: ps.extraTurns,
		Captures:   ps.captures,
		Captured:   ps.captured,
	}
}
