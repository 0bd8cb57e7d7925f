package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/mancala/minimax"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Options: []string{"-stones", "-first"}},
	"solve":    {Options: []string{"-difficulty", "-depth", "-nopruning", "-log"}},
	"autoplay": {Options: []string{"-games", "-threads", "-p1", "-p2", "-random-plies", "-stones", "-seeds", "-log"}},
	"remote":   {Options: []string{"-difficulty"}},
	"set":      {Args: settingNames},
	"help": {Args: []string{
		"new", "play", "solve", "set", "load", "autoplay", "script",
	}},
}

var commandNames = []string{
	"help", "new", "show", "play", "ai", "hint", "eval", "solve", "set",
	"load", "kpn", "autoplay", "remote", "script", "exit",
}

var boolValues = []string{"true", "false"}

func difficultyNames() []string {
	var names []string
	for _, d := range minimax.Difficulties() {
		names = append(names, d.String())
	}
	return names
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-difficulty", lastCompleteField == "-p1",
			lastCompleteField == "-p2":
			completions = append(difficultyNames(), "random")
		case lastCompleteField == "-nopruning":
			completions = boolValues
		case cmdName == "set" && lastCompleteField == "difficulty":
			completions = difficultyNames()
		case cmdName == "set" && lastCompleteField == "autoreply":
			completions = boolValues
		case cmdName == "play" && c.sc.IsPlaying():
			for _, pit := range c.sc.game.LegalMoves() {
				completions = append(completions, strconv.Itoa(pit))
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
