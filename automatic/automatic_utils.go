package automatic

// Computer vs computer matches, for comparing difficulty tiers.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/mancala/board"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Options configures a CompVsComp match.
type Options struct {
	Player1      string
	Player2      string
	NumGames     int
	Threads      int
	RandomPlies  int
	StonesPerPit int
	// Seeds, if given, make the random opening plies reproducible. Game i
	// uses Seeds[i % len(Seeds)].
	Seeds []Seed
	// GameLogFile gets one CSV line per finished game; TurnLogFile one
	// line per move. Either may be empty.
	GameLogFile string
	TurnLogFile string
}

// CompVsComp plays opts.NumGames games between the two players, at most
// opts.Threads at a time. Players take turns going first.
func CompVsComp(ctx context.Context, opts Options) (*Results, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if opts.NumGames <= 0 {
		return nil, errors.New("need at least one game")
	}
	threads := max(opts.Threads, 1)
	// Fail fast on bad player names before spinning anything up.
	if _, err := NewGameRunner(nil, opts.Player1, opts.Player2); err != nil {
		return nil, err
	}

	log.Info().Int("games", opts.NumGames).Int("threads", threads).
		Str("p1", opts.Player1).Str("p2", opts.Player2).Msg("starting-cvc")
	CVCCounter.Set(0)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	results := NewResults(opts.Player1, opts.Player2)
	var mu sync.Mutex

	var turnChan, gameChan chan string
	writers := errgroup.Group{}
	if opts.TurnLogFile != "" {
		turnChan = make(chan string, 100)
		writers.Go(func() error {
			return writeLog(opts.TurnLogFile,
				"playerID,gameID,turn,pit,extraturn,captured,ourstore,theirstore\n", turnChan)
		})
	}
	if opts.GameLogFile != "" {
		gameChan = make(chan string, 100)
		writers.Go(func() error {
			return writeLog(opts.GameLogFile,
				fmt.Sprintf("gameID,%s_1,%s_2,wentfirst,turns\n", opts.Player1, opts.Player2), gameChan)
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < opts.NumGames; i++ {
		if gctx.Err() != nil {
			log.Info().Msg("got stop signal, exiting soon...")
			break
		}
		i := i
		g.Go(func() error {
			r, err := NewGameRunner(turnChan, opts.Player1, opts.Player2)
			if err != nil {
				return err
			}
			r.SetRandomPlies(opts.RandomPlies)
			if opts.StonesPerPit > 0 {
				r.SetStonesPerPit(opts.StonesPerPit)
			}
			if len(opts.Seeds) > 0 {
				r.SetSeed(opts.Seeds[i%len(opts.Seeds)])
			}
			res, err := r.PlayGame(gctx, board.Player(i%2))
			if err != nil {
				return err
			}
			if gameChan != nil {
				gameChan <- fmt.Sprintf("%s,%d,%d,%s,%d\n", res.GameID, res.Scores[0], res.Scores[1],
					r.Game().NameFor(res.WentFirst), res.Turns)
			}
			mu.Lock()
			results.Add(res)
			mu.Unlock()
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%1000 == 0 {
				log.Info().Int64("games", n).Msg("cvc-progress")
			}
			return nil
		})
	}
	err := g.Wait()

	if turnChan != nil {
		close(turnChan)
	}
	if gameChan != nil {
		close(gameChan)
	}
	if werr := writers.Wait(); werr != nil && err == nil {
		err = werr
	}
	log.Info().Int("played", results.Games).Msg("cvc-finished")
	return results, err
}

func writeLog(path, header string, lines <-chan string) error {
	f, err := os.Create(path)
	if err != nil {
		// Keep draining so the game workers never block on us.
		for range lines {
		}
		return err
	}
	defer f.Close()
	_, err = f.WriteString(header)
	for msg := range lines {
		if err == nil {
			_, err = f.WriteString(msg)
		}
	}
	return err
}
