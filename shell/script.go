package shell

import (
	"errors"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("mancala_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand wraps a shell command so a script can call it with a single
// string argument holding the rest of the command line. On failure the
// function returns nil and the error message.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		cmd, err := extractFields(line)
		if err != nil {
			log.Err(err).Str("cmd", name).Msg("error-parsing-script-command")
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		r, err := sc.dispatch(cmd)
		if err != nil {
			log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		if r == nil {
			L.Push(lua.LString(""))
		} else {
			L.Push(lua.LString(r.message))
		}
		return 1
	}
}

// Best returns the move the computer would play in the current position
// and its score. The move is -1 if there is none.
func Best(L *lua.LState) int {
	sc := getShell(L)
	if !sc.IsPlaying() {
		L.Push(lua.LNumber(-1))
		L.Push(lua.LNumber(0))
		return 2
	}
	cmd := &shellcmd{cmd: "solve", options: CmdOptions{}}
	if L.GetTop() > 0 {
		var err error
		if cmd, err = extractFields("solve " + L.ToString(1)); err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
	}
	res, _, err := sc.solveCurrent(cmd)
	if err != nil {
		log.Err(err).Msg("error-executing-best")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(res.Move))
	L.Push(lua.LNumber(res.Score))
	return 2
}

// Winner returns the index of the winning player, -1 for a tie, or nil
// while the game is still going.
func Winner(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil || sc.IsPlaying() {
		L.Push(lua.LNil)
		return 1
	}
	w, ok := sc.game.Winner()
	if !ok {
		L.Push(lua.LNumber(-1))
		return 1
	}
	L.Push(lua.LNumber(w))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("mancala_shell", lsc)
	L.SetGlobal("mancala_new", L.NewFunction(luaCommand("new")))
	L.SetGlobal("mancala_play", L.NewFunction(luaCommand("play")))
	L.SetGlobal("mancala_ai", L.NewFunction(luaCommand("ai")))
	L.SetGlobal("mancala_set", L.NewFunction(luaCommand("set")))
	L.SetGlobal("mancala_load", L.NewFunction(luaCommand("load")))
	L.SetGlobal("mancala_show", L.NewFunction(luaCommand("show")))
	L.SetGlobal("mancala_eval", L.NewFunction(luaCommand("eval")))
	L.SetGlobal("mancala_kpn", L.NewFunction(luaCommand("kpn")))
	L.SetGlobal("mancala_best", L.NewFunction(Best))
	L.SetGlobal("mancala_winner", L.NewFunction(Winner))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg(""), nil
}
