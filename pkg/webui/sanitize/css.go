package sanitize

import (
	"bytes"
	"strings"

	"github.com/gorilla/css/scanner"
)

// allowedProperties lists the CSS properties kept in inline styles.  Positioning and anything
// able to load remote resources is left out.
var allowedProperties = map[string]struct{}{
	"align":            {},
	"background-color": {},
	"border":           {},
	"border-bottom":    {},
	"border-collapse":  {},
	"border-color":     {},
	"border-left":      {},
	"border-radius":    {},
	"border-right":     {},
	"border-spacing":   {},
	"border-style":     {},
	"border-top":       {},
	"border-width":     {},
	"box-sizing":       {},
	"clear":            {},
	"color":            {},
	"display":          {},
	"float":            {},
	"font":             {},
	"font-family":      {},
	"font-size":        {},
	"font-style":       {},
	"font-weight":      {},
	"height":           {},
	"letter-spacing":   {},
	"line-height":      {},
	"margin":           {},
	"margin-bottom":    {},
	"margin-left":      {},
	"margin-right":     {},
	"margin-top":       {},
	"max-height":       {},
	"max-width":        {},
	"min-height":       {},
	"min-width":        {},
	"overflow":         {},
	"padding":          {},
	"padding-bottom":   {},
	"padding-left":     {},
	"padding-right":    {},
	"padding-top":      {},
	"table-layout":     {},
	"text-align":       {},
	"text-decoration":  {},
	"text-shadow":      {},
	"text-transform":   {},
	"vertical-align":   {},
	"white-space":      {},
	"width":            {},
	"word-break":       {},
	"word-wrap":        {},
}

// styleState consumes one token and returns the next state, nil aborts the whole attribute.
type styleState func(b *bytes.Buffer, t *scanner.Token) styleState

// sanitizeStyle drops declarations whose property is not allowed.  Scanner errors discard the
// entire attribute.
func sanitizeStyle(input string) string {
	b := &bytes.Buffer{}
	scan := scanner.New(input)
	state := expectProperty
	for {
		t := scan.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return b.String()
		case scanner.TokenError:
			return ""
		}
		if state = state(b, t); state == nil {
			return ""
		}
	}
}

func expectProperty(b *bytes.Buffer, t *scanner.Token) styleState {
	switch t.Type {
	case scanner.TokenS:
		return expectProperty
	case scanner.TokenIdent:
		if _, ok := allowedProperties[strings.ToLower(t.Value)]; ok {
			b.WriteString(t.Value)
			return copyDeclaration
		}
		return skipDeclaration
	}
	// Unexpected token, leave a marker and skip to the next declaration.
	b.WriteString("/*" + t.Type.String() + "*/")
	return skipDeclaration
}

func skipDeclaration(_ *bytes.Buffer, t *scanner.Token) styleState {
	if isSemicolon(t) {
		return expectProperty
	}
	return skipDeclaration
}

func copyDeclaration(b *bytes.Buffer, t *scanner.Token) styleState {
	b.WriteString(t.Value)
	if isSemicolon(t) {
		return expectProperty
	}
	return copyDeclaration
}

func isSemicolon(t *scanner.Token) bool {
	return t.Type == scanner.TokenChar && t.Value == ";"
}
