package luahost

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const (
	viewerName       = "viewer"
	viewerAfterName  = "viewer_after"
	viewerBeforeName = "viewer_before"

	afterInboxFetchedFnName = "inbox_fetched"
	beforeEmailListedFnName = "email_listed"
)

// Viewer holds the event functions a script registered on the viewer global.
type Viewer struct {
	After  ViewerAfterFuncs
	Before ViewerBeforeFuncs
}

// ViewerAfterFuncs are notified once something has happened.
type ViewerAfterFuncs struct {
	InboxFetched *lua.LFunction
}

// ViewerBeforeFuncs may change the outcome of what is about to happen.
type ViewerBeforeFuncs struct {
	EmailListed *lua.LFunction
}

func registerViewerTypes(ls *lua.LState) {
	// viewer type.
	mt := ls.NewTypeMetatable(viewerName)
	ls.SetField(mt, "__index", ls.NewFunction(viewerIndex))

	// viewer.after type.
	mt = ls.NewTypeMetatable(viewerAfterName)
	ls.SetField(mt, "__index", ls.NewFunction(viewerAfterIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(viewerAfterNewIndex))

	// viewer.before type.
	mt = ls.NewTypeMetatable(viewerBeforeName)
	ls.SetField(mt, "__index", ls.NewFunction(viewerBeforeIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(viewerBeforeNewIndex))

	// viewer global.
	ls.SetGlobal(viewerName, wrapUserData(ls, &Viewer{}, viewerName))
}

func wrapUserData(ls *lua.LState, val any, typeName string) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(typeName))

	return ud
}

func getViewer(ls *lua.LState) (*Viewer, error) {
	lv := ls.GetGlobal(viewerName)
	if lv == nil {
		return nil, errors.New("viewer object was nil")
	}

	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, fmt.Errorf("viewer object was type %s instead of UserData", lv.Type())
	}

	val, ok := ud.Value.(*Viewer)
	if !ok {
		return nil, fmt.Errorf("viewer object (%v) could not be cast", ud.Value)
	}

	return val, nil
}

func checkUserData[T any](ls *lua.LState, pos int, typeName string) *T {
	ud := ls.CheckUserData(pos)
	if val, ok := ud.Value.(*T); ok {
		return val
	}
	ls.ArgError(pos, typeName+" expected")
	return nil
}

// viewer getter.
func viewerIndex(ls *lua.LState) int {
	v := checkUserData[Viewer](ls, 1, viewerName)
	field := ls.CheckString(2)

	// Push the requested field's value onto the stack.
	switch field {
	case "after":
		ls.Push(wrapUserData(ls, &v.After, viewerAfterName))
	case "before":
		ls.Push(wrapUserData(ls, &v.Before, viewerBeforeName))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// viewer.after getter.
func viewerAfterIndex(ls *lua.LState) int {
	after := checkUserData[ViewerAfterFuncs](ls, 1, viewerAfterName)
	field := ls.CheckString(2)

	switch field {
	case afterInboxFetchedFnName:
		ls.Push(funcOrNil(after.InboxFetched))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// viewer.after setter.
func viewerAfterNewIndex(ls *lua.LState) int {
	after := checkUserData[ViewerAfterFuncs](ls, 1, viewerAfterName)
	index := ls.CheckString(2)

	switch index {
	case afterInboxFetchedFnName:
		after.InboxFetched = ls.CheckFunction(3)
	default:
		ls.RaiseError("invalid viewer.after index %q", index)
	}

	return 0
}

// viewer.before getter.
func viewerBeforeIndex(ls *lua.LState) int {
	before := checkUserData[ViewerBeforeFuncs](ls, 1, viewerBeforeName)
	field := ls.CheckString(2)

	switch field {
	case beforeEmailListedFnName:
		ls.Push(funcOrNil(before.EmailListed))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// viewer.before setter.
func viewerBeforeNewIndex(ls *lua.LState) int {
	before := checkUserData[ViewerBeforeFuncs](ls, 1, viewerBeforeName)
	index := ls.CheckString(2)

	switch index {
	case beforeEmailListedFnName:
		before.EmailListed = ls.CheckFunction(3)
	default:
		ls.RaiseError("invalid viewer.before index %q", index)
	}

	return 0
}

func funcOrNil(f *lua.LFunction) lua.LValue {
	if f == nil {
		return lua.LNil
	}

	return f
}
