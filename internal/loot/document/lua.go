package document

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Shopify/go-lua"
)

// DecodeLua runs a Lua script that returns the document as a table.
//
// The table is converted to plain Go values and decoded through the JSON
// decoder, so field names and defaults match the other formats. Empty Lua
// tables carry no shape and decode as absent fields.
func DecodeLua(data []byte) (Document, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadString(state, string(data)); err != nil {
		return Document{}, parseError(FormatLua, fmt.Errorf("load lua: %w", err))
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return Document{}, parseError(FormatLua, fmt.Errorf("run lua: %w", err))
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return Document{}, parseError(FormatLua, fmt.Errorf("script must return a table"))
	}
	root := tableToGo(state, -1)
	state.Pop(1)

	if _, ok := root.(map[string]any); !ok {
		return Document{}, missingQualities(FormatLua)
	}
	encoded, err := json.Marshal(root)
	if err != nil {
		return Document{}, parseError(FormatLua, err)
	}
	var doc Document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return Document{}, parseError(FormatLua, err)
	}
	if doc.QualityData == nil {
		return Document{}, missingQualities(FormatLua)
	}
	return doc, nil
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a slice for sequence tables, nil for empty tables and a
// map otherwise.
func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		count++
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if count == 0 {
		return nil
	}
	if isArray && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 && math.Abs(value) < 1<<53 {
		return int64(value)
	}
	return value
}
