// Package luahost runs Lua scripts that observe fetches and filter the listed emails.
package luahost

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/extension/event"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Host of Lua extensions.
type Host struct {
	Functions []string // Functions detected in lua script.
	extHost   *extension.Host
	pool      *statePool
	logger    zerolog.Logger
}

// New constructs a new Lua Host, pre-compiling the source.  A missing script is not an error, a
// nil Host is returned instead.
func New(conf config.Lua, extHost *extension.Host) (*Host, error) {
	scriptPath := conf.Path
	if scriptPath == "" {
		return nil, nil
	}

	logger := log.With().Str("module", "lua").Str("phase", "startup").Str("path", scriptPath).
		Logger()

	// Pre-load, parse, and compile script.
	if fi, err := os.Stat(scriptPath); err != nil {
		logger.Info().Msg("Script file not found")
		return nil, nil
	} else if fi.IsDir() {
		return nil, fmt.Errorf("lua script %v is a directory", scriptPath)
	}

	logger.Info().Msg("Loading script")
	file, err := os.Open(scriptPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewFromReader(log.Logger, extHost, bufio.NewReader(file), scriptPath)
}

// NewFromReader constructs a new Lua Host, loading Lua source from the provided reader.
// The provided path is used in logging and error messages.
func NewFromReader(
	logger zerolog.Logger,
	extHost *extension.Host,
	r io.Reader,
	path string,
) (*Host, error) {
	// Pre-parse, and compile script.
	chunk, err := parse.Parse(r, path)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	// Build the pool and confirm LState is retrievable.
	pool := newStatePool(logger, proto)
	h := &Host{
		extHost: extHost,
		pool:    pool,
		logger:  logger.With().Str("module", "lua").Logger(),
	}
	ls, err := pool.getState()
	if err != nil {
		return nil, err
	}
	defer pool.putState(ls)

	if err := h.wireFunctions(ls); err != nil {
		return nil, err
	}

	return h, nil
}

// CreateChannel creates a channel and places it into the named global variable
// in newly created LStates.
func (h *Host) CreateChannel(name string) chan lua.LValue {
	return h.pool.createChannel(name)
}

// Close releases the Lua states.  Events arriving afterwards are logged and ignored.
func (h *Host) Close() {
	h.pool.close()
}

// wireFunctions subscribes to the extension events the script registered functions for.
func (h *Host) wireFunctions(ls *lua.LState) error {
	v, err := getViewer(ls)
	if err != nil {
		return err
	}

	const listenerName = "lua"
	events := h.extHost.Events
	if v.After.InboxFetched != nil {
		events.AfterInboxFetched.AddListener(listenerName, h.handleAfterInboxFetched)
		h.Functions = append(h.Functions, "after."+afterInboxFetchedFnName)
	}
	if v.Before.EmailListed != nil {
		events.BeforeEmailListed.AddListener(listenerName, h.handleBeforeEmailListed)
		h.Functions = append(h.Functions, "before."+beforeEmailListedFnName)
	}

	for _, name := range h.Functions {
		h.logger.Debug().Str("function", name).Msg("Registered Lua function")
	}

	return nil
}

func (h *Host) handleAfterInboxFetched(ev event.InboxFetched) {
	logger, ls, v, ok := h.prepareFuncCall("after.inbox_fetched")
	if !ok {
		return
	}
	defer h.pool.putState(ls)
	if v.After.InboxFetched == nil {
		return
	}

	err := ls.CallByParam(
		lua.P{Fn: v.After.InboxFetched, NRet: 0, Protect: true},
		wrapInboxFetched(ls, &ev),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to call Lua function")
	}
}

// handleBeforeEmailListed maps the script's answer to a decision: true keeps the email, false
// hides it, nil has no opinion.
func (h *Host) handleBeforeEmailListed(summary event.EmailSummary) *event.ListDecision {
	logger, ls, v, ok := h.prepareFuncCall("before.email_listed")
	if !ok {
		return nil
	}
	defer h.pool.putState(ls)
	if v.Before.EmailListed == nil {
		return nil
	}

	err := ls.CallByParam(
		lua.P{Fn: v.Before.EmailListed, NRet: 1, Protect: true},
		wrapEmailSummary(ls, &summary),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to call Lua function")
		return nil
	}

	lval := ls.Get(-1)
	ls.Pop(1)
	switch lval := lval.(type) {
	case lua.LBool:
		return &event.ListDecision{Keep: bool(lval)}
	case *lua.LNilType:
		return nil
	default:
		logger.Error().Str("type", lval.Type().String()).
			Msg("Lua function returned neither a boolean nor nil")
		return nil
	}
}

// prepareFuncCall checks out an LState and its viewer functions.  On success the caller must
// return the LState to the pool.
func (h *Host) prepareFuncCall(funcName string) (
	logger *zerolog.Logger, ls *lua.LState, v *Viewer, ok bool) {
	lg := h.logger.With().Str("event", funcName).Logger()
	logger = &lg

	ls, err := h.pool.getState()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get Lua state instance from pool")
		return logger, nil, nil, false
	}

	v, err = getViewer(ls)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to obtain Lua viewer object")
		h.pool.putState(ls)
		return logger, nil, nil, false
	}

	return logger, ls, v, true
}
