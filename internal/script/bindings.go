package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/patterns/internal/command"
)

// ModuleName is the global table exposing the application to scripts.
const ModuleName = "app"

// Bind exposes an invoker to the state as the global "app" table and
// redirects print to out.
//
//	app.click("Copy")   -- returns outcome, error message or nil
//	app.undo()          -- same as app.click("Undo")
//	app.history()       -- array of recorded command names, oldest first
//	app.size()          -- number of recorded commands
//
// Contained command failures are returned to the script. Unknown trigger
// names raise a Lua error.
func (s *State) Bind(ctx context.Context, inv *command.Invoker, out io.Writer) {
	if out == nil {
		out = io.Discard
	}

	activate := func(L *lua.LState, t command.Trigger) int {
		o := inv.Activate(ctx, t)
		L.Push(lua.LString(o.Kind.String()))
		if o.Kind == command.OutcomeFailed && o.Err != nil {
			L.Push(lua.LString(o.Err.Error()))
		} else {
			L.Push(lua.LNil)
		}
		return 2
	}

	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"click": func(L *lua.LState) int {
			t, err := command.ParseTrigger(L.CheckString(1))
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			return activate(L, t)
		},
		"undo": func(L *lua.LState) int {
			return activate(L, command.TriggerUndo)
		},
		"history": func(L *lua.LState) int {
			tbl := L.NewTable()
			for _, e := range inv.History().Entries() {
				tbl.Append(lua.LString(e.Description()))
			}
			L.Push(tbl)
			return 1
		},
		"size": func(L *lua.LState) int {
			L.Push(lua.LNumber(inv.History().Len()))
			return 1
		},
	})

	s.RegisterFunc("print", func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	})
}

// Driver returns a command demo driver that runs code against the
// application.
func Driver(code string, opts ...StateOption) command.Driver {
	return func(ctx context.Context, inv *command.Invoker, out io.Writer) error {
		s := NewState(opts...)
		defer s.Close()

		s.Bind(ctx, inv, out)
		return s.DoString(ctx, code)
	}
}

// FileDriver is like Driver but reads the script from path when run.
func FileDriver(path string, opts ...StateOption) command.Driver {
	return func(ctx context.Context, inv *command.Invoker, out io.Writer) error {
		s := NewState(opts...)
		defer s.Close()

		s.Bind(ctx, inv, out)
		return s.DoFile(ctx, path)
	}
}
