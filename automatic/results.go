package automatic

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/domino14/mancala/board"
	"github.com/domino14/mancala/stats"
)

// Results accumulates finished games. Spreads are from player 1's side
// (the first name given to CompVsComp).
type Results struct {
	Players [2]string
	Games   int
	Wins    [2]int
	Ties    int
	// Games won by whoever moved first.
	FirstMoverWins int

	Scores [2]stats.Statistic
	Spread stats.Statistic
	Turns  stats.Statistic

	spreads []float64
}

func NewResults(player1, player2 string) *Results {
	return &Results{Players: [2]string{player1, player2}}
}

func (r *Results) Add(res *GameResult) {
	r.Games++
	if res.Tie {
		r.Ties++
	} else {
		r.Wins[res.Winner]++
		if res.Winner == res.WentFirst {
			r.FirstMoverWins++
		}
	}
	for p := range res.Scores {
		r.Scores[p].Push(float64(res.Scores[p]))
	}
	spread := float64(res.Scores[board.Player0] - res.Scores[board.Player1])
	r.Spread.Push(spread)
	r.Turns.Push(float64(res.Turns))
	r.spreads = append(r.spreads, spread)
}

// WinRate is player 1's win rate, ties counting half, with a confidence
// interval (0-100).
func (r *Results) WinRate(confidenceInterval float64) stats.WinRate {
	return stats.WinRateInterval(r.Wins[0], r.Ties, r.Games, confidenceInterval)
}

// Summary is the YAML-friendly form of Results.
type Summary struct {
	Players        [2]string     `yaml:"players,flow"`
	Games          int           `yaml:"games"`
	Wins           [2]int        `yaml:"wins,flow"`
	Ties           int           `yaml:"ties"`
	FirstMoverWins int           `yaml:"first-mover-wins"`
	WinRate95      stats.WinRate `yaml:"p1-win-rate-95"`
	MeanScores     [2]float64    `yaml:"mean-scores,flow"`
	MeanSpread     float64       `yaml:"mean-spread"`
	SpreadStdErr   float64       `yaml:"spread-stderr"`
	MeanTurns      float64       `yaml:"mean-turns"`
}

func (r *Results) Summary() Summary {
	return Summary{
		Players:        r.Players,
		Games:          r.Games,
		Wins:           r.Wins,
		Ties:           r.Ties,
		FirstMoverWins: r.FirstMoverWins,
		WinRate95:      r.WinRate(95),
		MeanScores:     [2]float64{r.Scores[0].Mean(), r.Scores[1].Mean()},
		MeanSpread:     r.Spread.Mean(),
		SpreadStdErr:   r.Spread.StandardError(),
		MeanTurns:      r.Turns.Mean(),
	}
}

func (r *Results) YAML() ([]byte, error) {
	return yaml.Marshal(r.Summary())
}

// FprintHistogram draws the distribution of spreads.
func (r *Results) FprintHistogram(w io.Writer, bins int) error {
	if len(r.spreads) == 0 {
		return nil
	}
	hist := histogram.Hist(bins, r.spreads)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

func (r *Results) String() string {
	var ss strings.Builder
	wr := r.WinRate(95)
	fmt.Fprintf(&ss, "Games played: %d\n", r.Games)
	fmt.Fprintf(&ss, "%s wins: %d  %s wins: %d  ties: %d\n",
		r.Players[0], r.Wins[0], r.Players[1], r.Wins[1], r.Ties)
	fmt.Fprintf(&ss, "%s win rate: %.3f (95%% CI %.3f - %.3f)\n",
		r.Players[0], wr.Rate, wr.Low, wr.High)
	fmt.Fprintf(&ss, "First mover wins: %d\n", r.FirstMoverWins)
	fmt.Fprintf(&ss, "Mean spread: %.3f +/- %.3f\n",
		r.Spread.Mean(), stats.ZVal(95)*r.Spread.StandardError())
	fmt.Fprintf(&ss, "Mean turns: %.1f\n", r.Turns.Mean())
	return ss.String()
}
