package mailview

import (
	"html/template"
	"strings"
	"time"

	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// Layout describes how the body of an expanded email is presented.
type Layout int

const (
	// LayoutEmpty shows the no content message.
	LayoutEmpty Layout = iota
	// LayoutText shows only the plain text body.
	LayoutText
	// LayoutHTML shows only the isolated html body.
	LayoutHTML
	// LayoutTabs offers both bodies behind a tab control.
	LayoutTabs
)

// Isolator renders untrusted html so it cannot affect the surrounding page.
type Isolator interface {
	Isolate(html string) (template.HTML, error)
}

// Options carries the render-time collaborators.
type Options struct {
	Now      time.Time
	Location *time.Location
	Printer  *i18n.Printer
	Isolator Isolator
}

// View is the display model of a ListState.
type View struct {
	Lang  i18n.Lang
	Items []ItemView
}

// Empty reports whether there is nothing to list.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

// ItemView is the summary row of one email.
type ItemView struct {
	Index        int
	Expanded     bool
	Avatar       string
	SenderName   string
	SenderEmail  string
	Subject      string
	Preview      string
	RelativeTime string
	Tag          string
	Detail       *DetailView
}

// DetailView holds the content shown for the expanded email.
type DetailView struct {
	From        string
	To          string
	Time        string
	Tag         string
	Layout      Layout
	Tab         Body
	Text        string
	HTML        template.HTML
	HTMLFailed  bool
	CanCopyHTML bool
	Attachments []AttachmentView
}

// Tabbed reports whether both bodies are offered behind tabs.
func (d *DetailView) Tabbed() bool {
	return d.Layout == LayoutTabs
}

// ShowsHTML reports whether the html body is the visible one.
func (d *DetailView) ShowsHTML() bool {
	return d.Layout == LayoutHTML || (d.Layout == LayoutTabs && d.Tab == BodyHTML)
}

// ShowsText reports whether the text body is the visible one.
func (d *DetailView) ShowsText() bool {
	return d.Layout == LayoutText || (d.Layout == LayoutTabs && d.Tab == BodyText)
}

// Empty reports whether the email has no body at all.
func (d *DetailView) Empty() bool {
	return d.Layout == LayoutEmpty
}

// AttachmentView is a single attachment line.
type AttachmentView struct {
	Name string
	Size string
}

// Render builds the view model for state.  It does not modify state.
func Render(state *ListState, opts Options) View {
	p := opts.Printer
	if p == nil {
		p = i18n.NewPrinter(i18n.Default)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	items := state.Items()
	expanded, hasExpanded := state.Expanded()
	view := View{Lang: p.Lang(), Items: make([]ItemView, len(items))}
	for i := range items {
		email := &items[i]
		sender := ParseSender(email.From, p)
		subject := email.Subject
		if subject == "" {
			subject = p.T(i18n.NoSubject)
		}
		item := ItemView{
			Index:        i,
			Avatar:       AvatarGlyph(email.From, p),
			SenderName:   sender.Name,
			SenderEmail:  sender.Email,
			Subject:      subject,
			Preview:      Preview(email.Text, p),
			RelativeTime: RelativeTime(email.Timestamp, opts.Now, opts.Location, p),
			Tag:          email.Tag,
		}
		if hasExpanded && expanded == i {
			item.Expanded = true
			item.Detail = renderDetail(email, state.Tab(), opts, p)
		}
		view.Items[i] = item
	}
	return view
}

func renderDetail(email *testmail.Email, tab Body, opts Options, p *i18n.Printer) *DetailView {
	d := &DetailView{
		From: orDefault(email.From, p.T(i18n.Unknown)),
		To:   orDefault(email.To, p.T(i18n.Unknown)),
		Time: p.LongDate(email.Time().In(opts.Location)),
		Tag:  email.Tag,
	}

	hasHTML := strings.TrimSpace(email.HTML) != ""
	hasText := strings.TrimSpace(email.Text) != ""
	d.CanCopyHTML = hasHTML
	switch {
	case hasHTML && hasText:
		d.Layout = LayoutTabs
		d.Tab = tab
		if d.Tab == "" {
			d.Tab = BodyHTML
		}
	case hasHTML:
		d.Layout = LayoutHTML
	case hasText:
		d.Layout = LayoutText
	default:
		d.Layout = LayoutEmpty
	}
	if hasText {
		d.Text = email.Text
	}
	if hasHTML {
		d.HTML, d.HTMLFailed = isolate(email.HTML, opts.Isolator)
	}

	for _, att := range email.Attachments {
		d.Attachments = append(d.Attachments, AttachmentView{
			Name: orDefault(att.Filename, p.T(i18n.Unnamed)),
			Size: FileSize(att.Size, p),
		})
	}
	return d
}

// isolate hands html to the isolator.  Without one the markup is shown as escaped source.
func isolate(html string, iso Isolator) (template.HTML, bool) {
	if iso == nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(html) + "</pre>"), false
	}
	out, err := iso.Isolate(html)
	if err != nil {
		return "", true
	}
	return out, false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
