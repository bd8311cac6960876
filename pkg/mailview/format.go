package mailview

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tmviewer/tmviewer/pkg/i18n"
)

const previewRunes = 100

var (
	senderPattern = regexp.MustCompile(`^(.*?)\s*<(.+)>$`)
	quoteStripper = strings.NewReplacer(`"`, "", `'`, "")
)

// Sender is a parsed From header.
type Sender struct {
	Name  string
	Email string
}

// ParseSender splits a `"Display Name" <address>` header.  A header without an angle bracket
// address is used as both name and address.  An empty header yields the unknown sender
// placeholder with no address.
func ParseSender(from string, p *i18n.Printer) Sender {
	if from == "" {
		return Sender{Name: p.T(i18n.UnknownSender)}
	}
	if m := senderPattern.FindStringSubmatch(from); m != nil {
		name := strings.TrimSpace(quoteStripper.Replace(m[1]))
		if name == "" {
			name = m[2]
		}
		return Sender{Name: name, Email: m[2]}
	}
	return Sender{Name: from, Email: from}
}

// AvatarGlyph returns the first character of the sender name, upper-cased unless it is a Han
// ideograph.  "?" is returned when there is no name.
func AvatarGlyph(from string, p *i18n.Printer) string {
	if from == "" {
		return "?"
	}
	name := ParseSender(from, p).Name
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	if unicode.Is(unicode.Han, r) {
		return string(r)
	}
	return p.Upper(string(r))
}

// Preview returns the first 100 characters of the text body with whitespace collapsed.
func Preview(text string, p *i18n.Printer) string {
	if text == "" {
		return p.T(i18n.NoPreview)
	}
	if utf8.RuneCountInString(text) > previewRunes {
		text = string([]rune(text)[:previewRunes])
	}
	return strings.Join(strings.Fields(text), " ")
}

// RelativeTime labels an epoch millisecond timestamp relative to now.  Anything a week or
// older is shown as an absolute date in loc.
func RelativeTime(timestamp int64, now time.Time, loc *time.Location, p *i18n.Printer) string {
	t := time.UnixMilli(timestamp)
	diff := now.Sub(t)
	mins := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return p.T(i18n.JustNow)
	case mins < 60:
		return p.T(i18n.MinsAgo, mins)
	case hours < 24:
		return p.T(i18n.HoursAgo, hours)
	case days < 7:
		return p.T(i18n.DaysAgo, days)
	}
	if loc == nil {
		loc = time.Local
	}
	return p.ShortDate(t.In(loc))
}

// FileSize formats a byte count.  Zero or negative sizes are unknown.
func FileSize(bytes int64, p *i18n.Printer) string {
	switch {
	case bytes <= 0:
		return p.T(i18n.UnknownSize)
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
