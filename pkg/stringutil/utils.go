// Package stringutil holds small string helpers shared by the web and export layers.
package stringutil

import (
	"net/mail"
	"strings"
)

// MakePathPrefixer returns a func that prefixes absolute URL paths with prefix.  Leading and
// trailing slashes on prefix are normalized; an empty prefix leaves paths unchanged.
func MakePathPrefixer(prefix string) func(string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return func(path string) string {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return prefix + path
	}
}

// ParseAddressList parses a comma separated header value leniently.  Entries which are not valid
// RFC 5322 addresses are kept as bare addresses so nothing is silently dropped.
func ParseAddressList(list string) []mail.Address {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil
	}
	if addrs, err := mail.ParseAddressList(list); err == nil {
		result := make([]mail.Address, len(addrs))
		for i, a := range addrs {
			result[i] = *a
		}
		return result
	}
	var result []mail.Address
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if a, err := mail.ParseAddress(part); err == nil {
			result = append(result, *a)
			continue
		}
		result = append(result, mail.Address{Address: part})
	}
	return result
}

// StringAddressList converts a list of addresses to a list of strings.
func StringAddressList(addrs []mail.Address) []string {
	s := make([]string, len(addrs))
	for i, a := range addrs {
		s[i] = a.String()
	}
	return s
}
