// Package sanitize cleans untrusted email markup before it is shown in the viewer.
package sanitize

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	cssSafe = regexp.MustCompile(".*")
	policy  = newPolicy()
)

// newPolicy extends the user generated content policy with the presentational markup common
// in email templates.  Inline styles are pre-filtered by filterStyles.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("center", "font")
	p.AllowAttrs("style").Matching(cssSafe).Globally()
	p.AllowAttrs("align", "valign", "bgcolor", "width", "height").
		OnElements("table", "tr", "td", "th", "img", "div", "p")
	p.AllowAttrs("cellpadding", "cellspacing", "border").OnElements("table")
	p.AllowAttrs("color", "face", "size").OnElements("font")
	return p
}

// HTML sanitizes the provided email body, keeping whitelisted inline CSS.
func HTML(body string) (string, error) {
	b := &bytes.Buffer{}
	if err := filterStyles(b, strings.NewReader(body)); err != nil {
		return "", err
	}
	return policy.Sanitize(b.String()), nil
}

// filterStyles copies the token stream from r to w, rewriting every style attribute through
// sanitizeStyle.  Style attributes left empty are dropped.
func filterStyles(w io.Writer, r io.Reader) error {
	bw := bufio.NewWriter(w)
	z := html.NewTokenizer(r)
	tag := make([]byte, 0, 256)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return bw.Flush()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !hasAttr {
				if _, err := bw.Write(z.Raw()); err != nil {
					return err
				}
				continue
			}
			tag = appendTag(tag[:0], z, name, tt == html.SelfClosingTagToken)
			if _, err := bw.Write(tag); err != nil {
				return err
			}
		default:
			if _, err := bw.Write(z.Raw()); err != nil {
				return err
			}
		}
	}
}

// appendTag re-serializes the current start tag, attribute values double quoted.
func appendTag(b []byte, z *html.Tokenizer, name []byte, selfClosing bool) []byte {
	b = append(b, '<')
	b = append(b, name...)
	for more := true; more; {
		var key, val []byte
		key, val, more = z.TagAttr()
		value := string(val)
		if strings.EqualFold(string(key), "style") {
			if value = sanitizeStyle(value); value == "" {
				continue
			}
		}
		b = append(b, ' ')
		b = append(b, key...)
		b = append(b, '=', '"')
		b = append(b, html.EscapeString(value)...)
		b = append(b, '"')
	}
	if selfClosing {
		b = append(b, '/')
	}
	return append(b, '>')
}
