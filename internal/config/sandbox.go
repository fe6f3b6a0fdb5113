package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// safeLibs are the only standard libraries a config or snapshot can reach.
// os, io, debug and channel are never opened.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals load code from outside the file being parsed.
var blockedGlobals = []string{"require", "module", "dofile", "loadfile", "load", "loadstring", "package"}

// newSandboxedVM creates a Lua VM that can only build tables: no process,
// filesystem or module access.
func newSandboxedVM() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return nil, fmt.Errorf("open lua library %q: %w", lib.name, err)
		}
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L, nil
}
