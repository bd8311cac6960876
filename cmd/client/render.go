package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	colorAccent = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	colorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	colorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	colorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
)

// renderer writes listings and emails as styled terminal text.  Styles collapse to plain text
// when w is not a terminal.
type renderer struct {
	w        io.Writer
	p        *i18n.Printer
	loc      *time.Location
	title    lipgloss.Style
	avatar   lipgloss.Style
	label    lipgloss.Style
	dim      lipgloss.Style
	tag      lipgloss.Style
	success  lipgloss.Style
	errStyle lipgloss.Style
}

func newRenderer(w io.Writer, p *i18n.Printer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		w:        w,
		p:        p,
		loc:      time.Local,
		title:    r.NewStyle().Bold(true),
		avatar:   r.NewStyle().Bold(true).Foreground(colorAccent),
		label:    r.NewStyle().Foreground(colorAccent),
		dim:      r.NewStyle().Foreground(colorGray),
		tag:      r.NewStyle().Foreground(colorGreen),
		success:  r.NewStyle().Foreground(colorGreen),
		errStyle: r.NewStyle().Bold(true).Foreground(colorRed),
	}
}

// List writes the stats line followed by one block per email.
func (r *renderer) List(l *listing) {
	stats := []string{
		r.label.Render(r.p.T(i18n.Total)) + " " + fmt.Sprint(l.Count),
		r.label.Render(r.p.T(i18n.Current)) + " " + fmt.Sprint(l.Current),
	}
	if l.Offset != 0 {
		stats = append(stats, r.label.Render(r.p.T(i18n.Offset))+" "+fmt.Sprint(l.Offset))
	}
	fmt.Fprintln(r.w, strings.Join(stats, "  "))

	if len(l.Rows) == 0 {
		fmt.Fprintln(r.w, r.dim.Render(r.p.T(i18n.NoEmailsFound)))
		return
	}
	for _, row := range l.Rows {
		fmt.Fprintln(r.w)
		header := fmt.Sprintf("[%d] %s %s %s", row.Index, r.avatar.Render(row.Avatar),
			r.title.Render(row.Name), r.dim.Render("<"+row.Address+">"))
		extras := []string{r.dim.Render(row.When)}
		if row.Tag != "" {
			extras = append(extras, r.tag.Render("#"+row.Tag))
		}
		if row.Attachments > 0 {
			extras = append(extras, r.dim.Render(fmt.Sprintf("+%d", row.Attachments)))
		}
		fmt.Fprintln(r.w, header+"  "+strings.Join(extras, " "))
		fmt.Fprintln(r.w, "    "+r.title.Render(row.Subject))
		fmt.Fprintln(r.w, "    "+r.dim.Render(row.Preview))
	}
}

// Email writes the detail rows of e followed by its body.  The text body is preferred, html is
// shown raw when it is the only body.
func (r *renderer) Email(e testmail.Email) {
	subject := e.Subject
	if subject == "" {
		subject = r.p.T(i18n.NoSubject)
	}
	fmt.Fprintln(r.w, r.title.Render(subject))

	unknown := r.p.T(i18n.Unknown)
	r.row(i18n.SenderLabel, orDefault(e.From, unknown))
	r.row(i18n.RecipientLabel, orDefault(e.To, unknown))
	when := unknown
	if e.Timestamp > 0 {
		when = r.p.LongDate(e.Time().In(r.loc))
	}
	r.row(i18n.TimeLabel, when)
	if e.Tag != "" {
		r.row(i18n.TagInfoLabel, r.tag.Render(e.Tag))
	}

	if len(e.Attachments) > 0 {
		fmt.Fprintln(r.w, r.label.Render(r.p.T(i18n.Attachments)+":"))
		for _, a := range e.Attachments {
			fmt.Fprintf(r.w, "  - %s %s\n", orDefault(a.Filename, r.p.T(i18n.Unnamed)),
				r.dim.Render("("+mailview.FileSize(a.Size, r.p)+")"))
		}
	}

	fmt.Fprintln(r.w)
	switch {
	case e.Text != "":
		fmt.Fprintln(r.w, e.Text)
	case e.HTML != "":
		fmt.Fprintln(r.w, r.dim.Render(r.p.T(i18n.HTMLView)+":"))
		fmt.Fprintln(r.w, e.HTML)
	default:
		fmt.Fprintln(r.w, r.dim.Render(r.p.T(i18n.NoContent)))
	}
}

// Success writes a confirmation line.
func (r *renderer) Success(msg string) {
	fmt.Fprintln(r.w, r.success.Render(msg))
}

// Error writes a failure line.
func (r *renderer) Error(msg string) {
	fmt.Fprintln(r.w, r.errStyle.Render(r.p.T(i18n.ErrorLabel)+": "+msg))
}

func (r *renderer) row(key, value string) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render(r.p.T(key)+":"), value)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
