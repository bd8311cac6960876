package luahost

import (
	"github.com/tmviewer/tmviewer/pkg/extension/event"
	lua "github.com/yuin/gopher-lua"
)

const inboxFetchedName = "inbox_fetched"

func registerInboxFetchedType(ls *lua.LState) {
	mt := ls.NewTypeMetatable(inboxFetchedName)
	ls.SetGlobal(inboxFetchedName, mt)

	// Methods.
	ls.SetField(mt, "__index", ls.NewFunction(inboxFetchedIndex))
}

func wrapInboxFetched(ls *lua.LState, val *event.InboxFetched) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(inboxFetchedName))

	return ud
}

func checkInboxFetched(ls *lua.LState, pos int) *event.InboxFetched {
	ud := ls.CheckUserData(pos)
	if v, ok := ud.Value.(*event.InboxFetched); ok {
		return v
	}
	ls.ArgError(pos, inboxFetchedName+" expected")
	return nil
}

// Gets a field value from the read-only InboxFetched user object.
func inboxFetchedIndex(ls *lua.LState) int {
	f := checkInboxFetched(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "namespace":
		ls.Push(lua.LString(f.Namespace))
	case "tag":
		ls.Push(lua.LString(f.Tag))
	case "count":
		ls.Push(lua.LNumber(f.Count))
	case "offset":
		ls.Push(lua.LNumber(f.Offset))
	case "limit":
		ls.Push(lua.LNumber(f.Limit))
	case "listed":
		ls.Push(lua.LNumber(f.Listed))
	case "failed":
		ls.Push(lua.LBool(f.Failed()))
	case "error":
		if f.Error == "" {
			ls.Push(lua.LNil)
		} else {
			ls.Push(lua.LString(f.Error))
		}
	case "time":
		ls.Push(lua.LNumber(f.Time.Unix()))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}
