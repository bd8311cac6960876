// Package i18n holds the UI string tables and locale aware formatting.
package i18n

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Lang identifies a supported UI language.
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"

	// Default is used when no language has been chosen.
	Default = Chinese
)

var (
	tags = map[Lang]language.Tag{
		Chinese: language.SimplifiedChinese,
		English: language.AmericanEnglish,
	}
	matcher = language.NewMatcher([]language.Tag{
		language.SimplifiedChinese,
		language.AmericanEnglish,
	})
	cat = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(tags[Default]))
	for lang, table := range translations {
		for key, msg := range table {
			if err := b.SetString(tags[lang], key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Parse returns the Lang named by s, or Default if s is not supported.
func Parse(s string) Lang {
	switch Lang(s) {
	case Chinese, English:
		return Lang(s)
	}
	return Default
}

// Match picks the best supported language for an Accept-Language header value.
func Match(acceptLanguage string) Lang {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, index, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default
	}
	if index == 1 {
		return English
	}
	return Chinese
}

// Other returns the language a toggle would switch to.
func (l Lang) Other() Lang {
	if l == English {
		return Chinese
	}
	return English
}

// Tag returns the BCP 47 tag for the language.
func (l Lang) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return tags[Default]
}

// Printer renders catalog messages and dates for one language.
type Printer struct {
	lang  Lang
	p     *message.Printer
	upper cases.Caser
}

// NewPrinter creates a Printer for lang.
func NewPrinter(lang Lang) *Printer {
	lang = Parse(string(lang))
	tag := lang.Tag()
	return &Printer{
		lang:  lang,
		p:     message.NewPrinter(tag, message.Catalog(cat)),
		upper: cases.Upper(tag),
	}
}

// Lang returns the printer's language.
func (p *Printer) Lang() Lang {
	return p.lang
}

// T returns the translation for key, formatted with args.  Unknown keys are returned as is.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Upper upper-cases s using the printer's locale rules.
func (p *Printer) Upper(s string) string {
	return p.upper.String(s)
}

// ShortDate formats t as month/day hour:minute.
func (p *Printer) ShortDate(t time.Time) string {
	if p.lang == English {
		return t.Format("01/02, 03:04 PM")
	}
	return t.Format("01/02 15:04")
}

// LongDate formats t with the full date and time of day.
func (p *Printer) LongDate(t time.Time) string {
	if p.lang == English {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return t.Format("2006/1/2 15:04:05")
}
