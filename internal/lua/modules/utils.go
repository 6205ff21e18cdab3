package modules

import (
	"context"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// UtilsModule provides utility functions to Lua
type UtilsModule struct{}

// NewUtilsModule creates a new utils module
func NewUtilsModule() *UtilsModule {
	return &UtilsModule{}
}

// Loader is the module loader for Lua
func (m *UtilsModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "sleep", L.NewFunction(m.sleep))
	L.SetField(mod, "now", L.NewFunction(m.now))

	L.Push(mod)
	return 1
}

// sleep(ms) -> (true, nil) or (nil, err) when the script is cancelled
func (m *UtilsModule) sleep(L *lua.LState) int {
	ms := L.CheckInt(1)

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C:
		L.Push(lua.LTrue)
		L.Push(lua.LNil)
		return 2
	case <-luaContext(L).Done():
		return pushError(L, luaContext(L).Err())
	}
}

// now() -> unix time in milliseconds
func (m *UtilsModule) now(L *lua.LState) int {
	L.Push(lua.LNumber(time.Now().UnixMilli()))
	return 1
}

func luaContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
