package modules

import (
	"encoding/json"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaToGo converts a Lua value to a Go value
func LuaToGo(v lua.LValue) interface{} {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		// Sequences become slices, everything else a map
		isArray := true
		maxIdx, count := 0, 0
		val.ForEach(func(k, _ lua.LValue) {
			count++
			if num, ok := k.(lua.LNumber); ok && num >= 1 && float64(num) == float64(int(num)) {
				if int(num) > maxIdx {
					maxIdx = int(num)
				}
			} else {
				isArray = false
			}
		})

		// Sparse keys would size the slice by the largest index
		if isArray && maxIdx > 0 && maxIdx <= count {
			arr := make([]interface{}, maxIdx)
			val.ForEach(func(k, v lua.LValue) {
				arr[int(k.(lua.LNumber))-1] = LuaToGo(v)
			})
			return arr
		}

		obj := make(map[string]interface{})
		val.ForEach(func(k, v lua.LValue) {
			obj[lua.LVAsString(k)] = LuaToGo(v)
		})
		return obj
	case *lua.LNilType:
		return nil
	default:
		return v.String()
	}
}

// GoToLuaValue converts a Go value to a Lua value
func GoToLuaValue(L *lua.LState, v interface{}) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []interface{}:
		tbl := L.NewTable()
		for i, item := range val {
			tbl.RawSetInt(i+1, GoToLuaValue(L, item))
		}
		return tbl
	case map[string]interface{}:
		tbl := L.NewTable()
		for k, v := range val {
			tbl.RawSetString(k, GoToLuaValue(L, v))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", v))
	}
}

// ToLuaValue converts any JSON-encodable value (API models included) to a Lua
// value, keeping the wire field names as table keys.
func ToLuaValue(L *lua.LState, v any) (lua.LValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return lua.LNil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return lua.LNil, err
	}
	return GoToLuaValue(L, generic), nil
}

// FromLuaTable decodes a Lua table into out through its JSON form.
func FromLuaTable(tbl *lua.LTable, out any) error {
	data, err := json.Marshal(LuaToGo(tbl))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// pushResult pushes (value, nil) or (nil, err) following the module convention.
func pushResult(L *lua.LState, v any, err error) int {
	if err != nil {
		return pushError(L, err)
	}
	lv, convErr := ToLuaValue(L, v)
	if convErr != nil {
		return pushError(L, convErr)
	}
	L.Push(lv)
	L.Push(lua.LNil)
	return 2
}

func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
