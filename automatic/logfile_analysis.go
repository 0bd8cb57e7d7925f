package automatic

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/mancala/board"
)

// AnalyzeLogFile rebuilds Results from a game log written by CompVsComp.
func AnalyzeLogFile(filepath string) (*Results, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,p1score,p2score,wentfirst,turns
	var res *Results
	var names [2]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// Header line. Player names are stored with a _1 / _2 suffix.
			for i := range names {
				names[i] = strings.TrimSuffix(record[i+1], "_"+strconv.Itoa(i+1))
			}
			res = NewResults(names[0], names[1])
			continue
		}
		if res == nil {
			return nil, errors.New("game log is missing its header line")
		}
		gr := &GameResult{GameID: record[0]}
		for i := range gr.Scores {
			gr.Scores[i], err = strconv.Atoi(record[i+1])
			if err != nil {
				return nil, err
			}
		}
		if len(record) > 4 {
			gr.Turns, err = strconv.Atoi(record[4])
			if err != nil {
				return nil, err
			}
		}
		// wentfirst holds the in-game name, which is the player name with
		// the same suffix.
		if strings.HasSuffix(record[3], "-2") {
			gr.WentFirst = board.Player1
		}
		switch {
		case gr.Scores[0] > gr.Scores[1]:
			gr.Winner = board.Player0
		case gr.Scores[1] > gr.Scores[0]:
			gr.Winner = board.Player1
		default:
			gr.Tie = true
		}
		res.Add(gr)
	}
	if res == nil {
		return nil, errors.New("empty game log")
	}
	return res, nil
}
