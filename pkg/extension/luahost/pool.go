package luahost

import (
	"errors"
	"net/http"
	"sync"

	"github.com/cjoudrey/gluahttp"
	"github.com/cosmotek/loguago"
	json "github.com/inbucket/gopher-json"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// errPoolClosed is returned by getState once the host has shut down.
var errPoolClosed = errors.New("lua state pool is closed")

// statePool hands out LStates that have already run the compiled script.  Idle states are reused
// so handlers do not pay for script initialization on every event.
type statePool struct {
	mu        sync.Mutex
	funcProto *lua.FunctionProto         // Compiled lua.
	modules   map[string]lua.LGFunction  // Native modules available to require().
	idle      []*lua.LState              // States ready for reuse.
	channels  map[string]chan lua.LValue // Global interop channels.
	closed    bool
}

func newStatePool(logger zerolog.Logger, funcProto *lua.FunctionProto) *statePool {
	return &statePool{
		funcProto: funcProto,
		modules: map[string]lua.LGFunction{
			"http":   gluahttp.NewHttpModule(&http.Client{}).Loader,
			"json":   json.Loader,
			"logger": loguago.NewLogger(logger).Loader,
		},
		channels: make(map[string]chan lua.LValue),
	}
}

// newState creates an LState, registers the viewer types and runs the script.  Lock must be held.
func (lp *statePool) newState() (*lua.LState, error) {
	ls := lua.NewState()
	for name, loader := range lp.modules {
		ls.PreloadModule(name, loader)
	}
	for name, ch := range lp.channels {
		ls.SetGlobal(name, lua.LChannel(ch))
	}

	registerViewerTypes(ls)
	registerMailAddressType(ls)
	registerEmailSummaryType(ls)
	registerInboxFetchedType(ls)

	ls.Push(ls.NewFunctionFromProto(lp.funcProto))
	if err := ls.PCall(0, lua.MultRet, nil); err != nil {
		ls.Close()
		return nil, err
	}

	return ls, nil
}

// getState returns an idle LState, creating one when none is available.
func (lp *statePool) getState() (*lua.LState, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.closed {
		return nil, errPoolClosed
	}

	n := len(lp.idle)
	if n == 0 {
		return lp.newState()
	}
	ls := lp.idle[n-1]
	lp.idle = lp.idle[:n-1]
	return ls, nil
}

// putState returns ls to the pool with an empty stack.  States returned after close are closed.
func (lp *statePool) putState(ls *lua.LState) {
	if ls.IsClosed() {
		return
	}
	ls.SetTop(0)

	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.closed {
		ls.Close()
		return
	}
	lp.idle = append(lp.idle, ls)
}

// createChannel creates a buffered channel that becomes the named global in every LState created
// from now on.  Idle states are discarded so the next getState sees the channel.
func (lp *statePool) createChannel(name string) chan lua.LValue {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	ch := make(chan lua.LValue, 10)
	lp.channels[name] = ch
	lp.closeIdle()

	return ch
}

// close discards idle states and refuses new checkouts.  States still in use are closed when
// they are returned.
func (lp *statePool) close() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.closed = true
	lp.closeIdle()
}

// closeIdle closes every idle state.  Lock must be held.
func (lp *statePool) closeIdle() {
	for _, ls := range lp.idle {
		ls.Close()
	}
	lp.idle = lp.idle[:0]
}
