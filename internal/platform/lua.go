package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectPlatformTable creates a read-only platform table and injects it into the Lua state as a global.
// This should be called before loading any user configuration code.
func InjectPlatformTable(L *lua.LState, info *Info) error {
	platformTable := L.NewTable()

	// Basic OS and architecture
	L.SetField(platformTable, "os", lua.LString(info.OS))
	L.SetField(platformTable, "arch", lua.LString(info.Arch))
	L.SetField(platformTable, "arch_raw", lua.LString(info.ArchRaw))
	L.SetField(platformTable, "version", lua.LString(info.Version))
	L.SetField(platformTable, "build", lua.LNumber(info.Build))

	// OS booleans
	L.SetField(platformTable, "is_linux", lua.LBool(info.IsLinux()))
	L.SetField(platformTable, "is_macos", lua.LBool(info.IsMacOS()))
	L.SetField(platformTable, "is_windows", lua.LBool(info.IsWindows()))

	// Architecture booleans
	L.SetField(platformTable, "is_amd64", lua.LBool(info.IsAMD64()))
	L.SetField(platformTable, "is_arm64", lua.LBool(info.IsARM64()))

	// build_at_least(n) mirrors Info.BuildAtLeast
	L.SetField(platformTable, "build_at_least", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(info.BuildAtLeast(L.CheckInt(1))))
		return 1
	}))

	// Helper function: when(condition, value)
	// Returns value if condition is true, nil otherwise
	whenFunc := L.NewFunction(func(L *lua.LState) int {
		cond := L.CheckBool(1)
		value := L.Get(2)
		if cond {
			L.Push(value)
		} else {
			L.Push(lua.LNil)
		}
		return 1
	})
	L.SetField(platformTable, "when", whenFunc)

	L.SetGlobal("platform", makeReadOnly(L, platformTable))

	return nil
}

// makeReadOnly wraps table in an empty proxy whose metatable redirects reads
// to table and rejects every write.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()
	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)

	return proxy
}
