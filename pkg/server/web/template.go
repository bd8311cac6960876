package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	templateMu    sync.Mutex
	templateFS    fs.FS
	templateCache = map[string]*template.Template{}
)

// SetTemplateFS selects the file system templates are parsed from and clears the cache.
func SetTemplateFS(fsys fs.FS) {
	templateMu.Lock()
	defer templateMu.Unlock()
	templateFS = fsys
	templateCache = map[string]*template.Template{}
}

// RenderTemplate fetches the named template and renders it to w.  Output is buffered so a
// failing template produces an error instead of a truncated page.
func RenderTemplate(name string, w http.ResponseWriter, data any) error {
	t, err := ParseTemplate(name)
	if err != nil {
		log.Error().Str("module", "web").Str("template", name).Err(err).
			Msg("Error in template")
		return err
	}
	buf := &bytes.Buffer{}
	if err := t.ExecuteTemplate(buf, "_base.html", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Expires", "-1")
	w.Header().Set("X-Frame-Options", "SameOrigin")
	_, err = buf.WriteTo(w)
	return err
}

// ParseTemplate loads the requested template along with _base.html, caching the result.
func ParseTemplate(name string) (*template.Template, error) {
	templateMu.Lock()
	defer templateMu.Unlock()

	if t, ok := templateCache[name]; ok {
		return t, nil
	}
	log.Debug().Str("module", "web").Str("template", name).Msg("Parsing template")
	t, err := template.New("_base.html").Funcs(TemplateFuncs).
		ParseFS(templateFS, "_base.html", "_*.html", name)
	if err != nil {
		return nil, err
	}
	templateCache[name] = t
	return t, nil
}
