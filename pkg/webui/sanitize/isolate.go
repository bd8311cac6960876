package sanitize

import (
	"html/template"

	"github.com/rs/zerolog/log"
)

const documentPrefix = `<!DOCTYPE html><html><head><meta charset="utf-8">` +
	`<base target="_blank"></head><body>`

const documentSuffix = `</body></html>`

// Sandbox renders email bodies inside a sandboxed iframe.  The body is sanitized first and the
// frame forbids scripts, so remote markup can neither run nor style the surrounding page.
type Sandbox struct {
	// Class is applied to the generated iframe element.
	Class string
}

// Isolate returns the iframe markup embedding the sanitized body through srcdoc.
func (s *Sandbox) Isolate(body string) (template.HTML, error) {
	clean, err := HTML(body)
	if err != nil {
		log.Warn().Str("module", "sanitize").Err(err).Msg("HTML sanitizer failed")
		return "", err
	}
	doc := documentPrefix + clean + documentSuffix
	frame := `<iframe sandbox="allow-same-origin" referrerpolicy="no-referrer"`
	if s.Class != "" {
		frame += ` class="` + template.HTMLEscapeString(s.Class) + `"`
	}
	frame += ` srcdoc="` + template.HTMLEscapeString(doc) + `"></iframe>`
	return template.HTML(frame), nil
}
