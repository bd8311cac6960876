package viewer

import (
	"slices"

	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// Snapshot is everything needed to draw one page.
type Snapshot struct {
	Settings settings.Settings
	Lang     i18n.Lang
	Theme    settings.Theme
	Stats    Stats
	Error    string
	Notice   *Notice
	Fetching bool
	List     mailview.View
	// Emails holds the raw listed emails, aligned with List.Items.
	Emails  []testmail.Email
	Printer *i18n.Printer
}

// NoticeText returns the localized notice, or "" when there is none.
func (s Snapshot) NoticeText() string {
	if s.Notice == nil {
		return ""
	}
	return s.Notice.Message(s.Printer)
}

// SnapshotOptions controls Snapshot.
type SnapshotOptions struct {
	// Fallback language when the user has not saved one.
	Fallback i18n.Lang
	Isolator mailview.Isolator
	// TakeNotice consumes the pending notice so it is shown only once.
	TakeNotice bool
}

// Snapshot renders the current state.
func (s *Session) Snapshot(opts SnapshotOptions) Snapshot {
	conf := s.store.Get()
	lang := i18n.Default
	if opts.Fallback != "" {
		lang = opts.Fallback
	}
	if conf.Lang != "" {
		lang = i18n.Parse(conf.Lang)
	}
	p := i18n.NewPrinter(lang)

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Settings: conf,
		Lang:     lang,
		Theme:    settings.ParseTheme(conf.Theme),
		Stats:    s.stats,
		Error:    ErrorMessage(s.lastErr, p),
		Notice:   s.notice,
		Fetching: s.fetching.Load(),
		Printer:  p,
		Emails:   slices.Clone(s.state.Items()),
		List: mailview.Render(s.state, mailview.Options{
			Now:      s.config.Clock(),
			Location: s.config.Location,
			Printer:  p,
			Isolator: opts.Isolator,
		}),
	}
	if opts.TakeNotice {
		s.notice = nil
	}
	return snap
}
