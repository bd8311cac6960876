package luahost

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

func makePool(t *testing.T, script string) *statePool {
	t.Helper()
	chunk, err := parse.Parse(strings.NewReader(script), "pool.lua")
	require.NoError(t, err)
	proto, err := lua.Compile(chunk, "pool.lua")
	require.NoError(t, err)

	return newStatePool(zerolog.Nop(), proto)
}

func TestPoolReusesStates(t *testing.T) {
	pool := makePool(t, "-- empty")

	a, err := pool.getState()
	require.NoError(t, err)
	b, err := pool.getState()
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Empty(t, pool.idle)

	pool.putState(a)
	pool.putState(b)
	assert.Len(t, pool.idle, 2)

	c, err := pool.getState()
	require.NoError(t, err)
	assert.Same(t, b, c, "most recently returned state should be reused")
}

func TestPoolPutDiscardsClosed(t *testing.T) {
	pool := makePool(t, "-- empty")

	ls, err := pool.getState()
	require.NoError(t, err)
	ls.Close()
	pool.putState(ls)
	assert.Empty(t, pool.idle)
}

func TestPoolPutClearsStack(t *testing.T) {
	pool := makePool(t, "-- empty")

	ls, err := pool.getState()
	require.NoError(t, err)
	ls.Push(lua.LNumber(4))
	ls.Push(lua.LString("bacon"))
	require.Equal(t, 2, ls.GetTop())

	pool.putState(ls)
	assert.Len(t, pool.idle, 1)
	assert.Equal(t, 0, ls.GetTop())
}

func TestPoolRunsScriptPerState(t *testing.T) {
	pool := makePool(t, `loaded = (loaded or 0) + 1`)

	a, err := pool.getState()
	require.NoError(t, err)
	b, err := pool.getState()
	require.NoError(t, err)

	assert.Equal(t, lua.LNumber(1), a.GetGlobal("loaded"))
	assert.Equal(t, lua.LNumber(1), b.GetGlobal("loaded"))
}

func TestPoolPreloadsModules(t *testing.T) {
	pool := makePool(t, `
		local json = require("json")
		local logger = require("logger")
		local http = require("http")
		modules_ok = json ~= nil and logger ~= nil and http ~= nil
	`)

	ls, err := pool.getState()
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, ls.GetGlobal("modules_ok"))
}

func TestPoolSetsChannels(t *testing.T) {
	pool := makePool(t, "-- empty")
	idle, err := pool.getState()
	require.NoError(t, err)
	pool.putState(idle)

	pool.createChannel("test_chan")
	assert.Empty(t, pool.idle, "idle states predate the channel")
	assert.True(t, idle.IsClosed())

	ls, err := pool.getState()
	require.NoError(t, err)
	assert.Equal(t, lua.LTChannel, ls.GetGlobal("test_chan").Type())
}

func TestPoolClose(t *testing.T) {
	pool := makePool(t, "-- empty")
	idle, err := pool.getState()
	require.NoError(t, err)
	busy, err := pool.getState()
	require.NoError(t, err)
	pool.putState(idle)

	pool.close()
	assert.True(t, idle.IsClosed())
	assert.False(t, busy.IsClosed())

	_, err = pool.getState()
	assert.ErrorIs(t, err, errPoolClosed)

	// States in use when the pool closed are released on return.
	pool.putState(busy)
	assert.True(t, busy.IsClosed())
	assert.Empty(t, pool.idle)
}
