package luahost

import (
	"net/mail"

	"github.com/tmviewer/tmviewer/pkg/stringutil"
	lua "github.com/yuin/gopher-lua"
)

const mailAddressName = "address"

func registerMailAddressType(ls *lua.LState) {
	mt := ls.NewTypeMetatable(mailAddressName)
	ls.SetGlobal(mailAddressName, mt)

	// Static attributes.
	ls.SetField(mt, "new", ls.NewFunction(newMailAddress))
	ls.SetField(mt, "parse", ls.NewFunction(parseMailAddress))

	// Methods.
	ls.SetField(mt, "__index", ls.NewFunction(mailAddressIndex))
	ls.SetField(mt, "__newindex", ls.NewFunction(mailAddressNewIndex))
	ls.SetField(mt, "__tostring", ls.NewFunction(mailAddressString))
}

func newMailAddress(ls *lua.LState) int {
	val := &mail.Address{
		Name:    ls.CheckString(1),
		Address: ls.CheckString(2),
	}
	ls.Push(wrapMailAddress(ls, val))

	return 1
}

// address.parse("Name <addr>") never fails; unparsable input becomes a bare address.
func parseMailAddress(ls *lua.LState) int {
	addrs := stringutil.ParseAddressList(ls.CheckString(1))
	if len(addrs) == 0 {
		ls.Push(lua.LNil)
		return 1
	}
	ls.Push(wrapMailAddress(ls, &addrs[0]))

	return 1
}

func wrapMailAddress(ls *lua.LState, val *mail.Address) *lua.LUserData {
	ud := ls.NewUserData()
	ud.Value = val
	ls.SetMetatable(ud, ls.GetTypeMetatable(mailAddressName))

	return ud
}

func checkMailAddress(ls *lua.LState, pos int) *mail.Address {
	ud := ls.CheckUserData(pos)
	if val, ok := ud.Value.(*mail.Address); ok {
		return val
	}
	ls.ArgError(pos, mailAddressName+" expected")
	return nil
}

func mailAddressIndex(ls *lua.LState) int {
	val := checkMailAddress(ls, 1)
	field := ls.CheckString(2)

	switch field {
	case "name":
		ls.Push(lua.LString(val.Name))
	case "address":
		ls.Push(lua.LString(val.Address))
	default:
		// Unknown field.
		ls.Push(lua.LNil)
	}

	return 1
}

func mailAddressNewIndex(ls *lua.LState) int {
	val := checkMailAddress(ls, 1)
	index := ls.CheckString(2)

	switch index {
	case "name":
		val.Name = ls.CheckString(3)
	case "address":
		val.Address = ls.CheckString(3)
	default:
		ls.RaiseError("invalid address index %q", index)
	}

	return 0
}

func mailAddressString(ls *lua.LState) int {
	val := checkMailAddress(ls, 1)
	ls.Push(lua.LString(val.String()))

	return 1
}
