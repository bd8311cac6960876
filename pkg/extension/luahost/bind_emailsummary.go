package luahost

import (
	"time"

	"github.com/tmviewer/tmviewer/pkg/extension/event"
	"github.com/tmviewer/tmviewer/pkg/stringutil"
	lua "github.com/yuin/gopher-lua"
)

const emailSummaryName = "email_summary"

func registerEmailSummaryType(ls *lua.LState) {
	mt := ls.NewTypeMetatable(emailSummaryName)
	ls.SetGlobal(emailSummaryName, mt)

	// Static attributes.
	ls.SetField(mt, "new", ls.NewFunction(newEmailSummary))

	// Methods.
	ls.SetField(mt, "__index", ls.NewFunction(emailSummaryIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(emailSummaryNewIndex))
}

func newEmailSummary(ls *lua.LState) int {
	ls.Push(wrapEmailSummary(ls, &event.EmailSummary{}))

	return 1
}

func wrapEmailSummary(ls *lua.LState, val *event.EmailSummary) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(emailSummaryName))

	return ud
}

func checkEmailSummary(ls *lua.LState, pos int) *event.EmailSummary {
	ud := ls.CheckUserData(pos)
	if v, ok := ud.Value.(*event.EmailSummary); ok {
		return v
	}
	ls.ArgError(pos, emailSummaryName+" expected")
	return nil
}

// Gets a field value from EmailSummary user object.  This emulates a Lua table,
// allowing `email.subject` instead of a Lua object syntax of `email:subject()`.
func emailSummaryIndex(ls *lua.LState) int {
	m := checkEmailSummary(ls, 1)
	field := ls.CheckString(2)

	// Push the requested field's value onto the stack.
	switch field {
	case "position":
		// Lua lists start at 1.
		ls.Push(lua.LNumber(m.Position + 1))
	case "from":
		ls.Push(lua.LString(m.From))
	case "sender":
		addrs := stringutil.ParseAddressList(m.From)
		if len(addrs) == 0 {
			ls.Push(lua.LNil)
		} else {
			ls.Push(wrapMailAddress(ls, &addrs[0]))
		}
	case "to":
		lt := &lua.LTable{}
		for _, a := range stringutil.ParseAddressList(m.To) {
			a := a
			lt.Append(wrapMailAddress(ls, &a))
		}
		ls.Push(lt)
	case "subject":
		ls.Push(lua.LString(m.Subject))
	case "tag":
		ls.Push(lua.LString(m.Tag))
	case "date":
		ls.Push(lua.LNumber(m.Date.Unix()))
	case "has_text":
		ls.Push(lua.LBool(m.HasText))
	case "has_html":
		ls.Push(lua.LBool(m.HasHTML))
	case "attachments":
		ls.Push(lua.LNumber(m.Attachments))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

// Sets a field value on EmailSummary user object.  Used by scripts constructing summaries for
// their own tests; the viewer ignores changes made by listeners.
func emailSummaryNewIndex(ls *lua.LState) int {
	m := checkEmailSummary(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "position":
		m.Position = ls.CheckInt(3) - 1
	case "from":
		m.From = ls.CheckString(3)
	case "to":
		m.To = ls.CheckString(3)
	case "subject":
		m.Subject = ls.CheckString(3)
	case "tag":
		m.Tag = ls.CheckString(3)
	case "date":
		m.Date = time.Unix(ls.CheckInt64(3), 0)
	case "has_text":
		m.HasText = ls.CheckBool(3)
	case "has_html":
		m.HasHTML = ls.CheckBool(3)
	case "attachments":
		m.Attachments = ls.CheckInt(3)
	default:
		ls.RaiseError("invalid index %q", index)
	}

	return 0
}
