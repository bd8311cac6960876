// Package test holds helpers shared by the Lua extension tests and the integration suite.
package test

import (
	"strings"
	"testing"
	"time"

	"github.com/cosmotek/loguago"
	json "github.com/inbucket/gopher-json"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// NotifyTimeout bounds how long AssertNotified waits for a script to respond.
const NotifyTimeout = 2 * time.Second

// LuaInit defines assertion helpers for scripts under test.  Scripts whose assertions run inside
// event handlers set async = true; failures are then logged and reported through test_ok
// instead of raising an error on the wrong goroutine.
const LuaInit = `
	local logger = require("logger")

	async = false
	test_ok = true

	-- Quotes strings, other values are shown with tostring so booleans and nil format.
	function show(v)
		if type(v) == "string" then
			return string.format("%q", v)
		end
		return tostring(v)
	end

	function assert_async(value, message)
		if value then
			return
		end
		if async then
			logger.error(message, {from = "assert_async"})
			test_ok = false
		else
			error(message, 2)
		end
	end

	-- Compares plain values, or list-style tables element by element.
	function assert_eq(got, want)
		if type(got) == "table" and type(want) == "table" then
			assert_async(#got == #want, string.format("got %d elements, wanted %d", #got, #want))
			for i, gotv in ipairs(got) do
				assert_eq(gotv, want[i])
			end
			return
		end

		assert_async(got == want, string.format("got %s, wanted %s", show(got), show(want)))
	end

	-- Verifies string got contains the pattern want.
	function assert_contains(got, want)
		assert_async(type(got) == "string" and string.find(got, want),
			string.format("got %s, wanted it to contain %q", show(got), want))
	end
`

// NewLuaState creates an LState with the logger and json modules and the helpers in LuaInit.
// The returned builder collects the log output of the script.
func NewLuaState() (*lua.LState, *strings.Builder) {
	output := &strings.Builder{}
	logger := loguago.NewLogger(zerolog.New(output))

	ls := lua.NewState()
	ls.PreloadModule("logger", logger.Loader)
	ls.PreloadModule("json", json.Loader)
	if err := ls.DoString(LuaInit); err != nil {
		panic(err)
	}

	return ls, output
}

// AssertNotified requires a truthy value on notify within NotifyTimeout.  Scripts send test_ok,
// so a false value means an async assertion failed; the script log has the details.
func AssertNotified(t *testing.T, notify chan lua.LValue) {
	t.Helper()
	select {
	case lv := <-notify:
		if lua.LVIsFalse(lv) {
			t.Error("Lua responded with false, wanted true")
		}
	case <-time.After(NotifyTimeout):
		t.Fatal("Lua did not respond to event within timeout")
	}
}
