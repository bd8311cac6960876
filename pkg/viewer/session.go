// Package viewer owns the running inbox session: the fetched list, its statistics, the last
// error and the user's settings.
package viewer

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/extension/event"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// ErrFetchInProgress is returned by Fetch while another fetch is running.
var ErrFetchInProgress = errors.New("fetch already in progress")

// Lister retrieves a page of emails.
type Lister interface {
	ListEmails(ctx context.Context, q testmail.Query) (*testmail.Inbox, error)
}

// Config controls fetch behavior.
type Config struct {
	Timeout  time.Duration
	Limit    int
	Location *time.Location
	Clock    func() time.Time
}

// Stats describes the last successful fetch.
type Stats struct {
	Fetched bool
	Count   int // Total reported by the server.
	Offset  int
	Limit   int
	Current int // Emails in the list.
}

// Session is the single user inbox session.  All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	client   Lister
	store    *settings.Store
	extHost  *extension.Host
	config   Config
	state    *mailview.ListState
	stats    Stats
	lastErr  error
	notice   *Notice
	fetching atomic.Bool
}

// NewSession creates a session with an empty list.
func NewSession(client Lister, store *settings.Store, extHost *extension.Host, config Config) *Session {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	return &Session{
		client:  client,
		store:   store,
		extHost: extHost,
		config:  config,
		state:   mailview.NewListState(),
	}
}

// Fetching reports whether a fetch is currently running.
func (s *Session) Fetching() bool {
	return s.fetching.Load()
}

// Fetch retrieves the inbox using the saved settings and replaces the list.  It returns the number
// of listed emails.  Failures empty the list and are kept for display; missing credentials are
// rejected before any request and leave the list untouched.
func (s *Session) Fetch(ctx context.Context) (int, error) {
	if !s.fetching.CompareAndSwap(false, true) {
		return 0, ErrFetchInProgress
	}
	defer s.fetching.Store(false)

	conf := s.store.Get()
	q := testmail.Query{
		APIKey:    conf.APIKey,
		Namespace: conf.Namespace,
		Tag:       conf.Tag,
		Limit:     s.config.Limit,
	}
	if err := q.Validate(); err != nil {
		s.mu.Lock()
		s.notice = errorNotice(err)
		s.mu.Unlock()
		return 0, err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logger := log.With().Str("module", "viewer").Str("namespace", q.Namespace).Logger()
	start := s.config.Clock()
	expFetchesTotal.Add(1)
	inbox, err := s.client.ListEmails(ctx, q)
	if err != nil {
		logger.Warn().Err(err).Msg("Fetch failed")
		expFailuresTotal.Add(1)
		expListedCurrent.Set(0)
		s.mu.Lock()
		s.state.Replace(nil)
		s.stats = Stats{}
		s.lastErr = err
		s.notice = errorNotice(err)
		s.mu.Unlock()
		s.emit(event.InboxFetched{
			Namespace: q.Namespace,
			Tag:       q.Tag,
			Error:     err.Error(),
			Time:      s.config.Clock(),
		})
		return 0, err
	}

	items := s.filter(inbox.Emails)
	expListedCurrent.Set(int64(len(items)))
	s.mu.Lock()
	s.state.Replace(items)
	s.stats = Stats{
		Fetched: true,
		Count:   inbox.Count,
		Offset:  inbox.Offset,
		Limit:   inbox.Limit,
		Current: len(items),
	}
	s.lastErr = nil
	if len(items) == 0 {
		s.notice = &Notice{Kind: NoticeDefault, Key: i18n.NoEmailsFound}
	} else {
		s.notice = &Notice{Kind: NoticeSuccess, Key: i18n.SuccessFetch, Args: []any{len(items)}}
	}
	s.mu.Unlock()

	logger.Debug().Int("count", inbox.Count).Int("listed", len(items)).
		Dur("elapsed", s.config.Clock().Sub(start)).Msg("Fetched inbox")
	s.emit(event.InboxFetched{
		Namespace: q.Namespace,
		Tag:       q.Tag,
		Count:     inbox.Count,
		Offset:    inbox.Offset,
		Limit:     inbox.Limit,
		Listed:    len(items),
		Time:      s.config.Clock(),
	})
	return len(items), nil
}

// filter asks extensions whether each email should be listed.
func (s *Session) filter(emails []testmail.Email) []testmail.Email {
	if s.extHost == nil || s.extHost.Events.BeforeEmailListed.Len() == 0 {
		return emails
	}
	kept := make([]testmail.Email, 0, len(emails))
	for i := range emails {
		summary := summarize(i, &emails[i])
		if d := s.extHost.Events.BeforeEmailListed.Emit(&summary); d != nil && !d.Keep {
			continue
		}
		kept = append(kept, emails[i])
	}
	return kept
}

func summarize(i int, e *testmail.Email) event.EmailSummary {
	return event.EmailSummary{
		Position:    i,
		From:        e.From,
		To:          e.To,
		Subject:     e.Subject,
		Tag:         e.Tag,
		Date:        e.Time(),
		HasText:     e.Text != "",
		HasHTML:     e.HTML != "",
		Attachments: len(e.Attachments),
	}
}

func (s *Session) emit(ev event.InboxFetched) {
	if s.extHost != nil {
		s.extHost.Events.AfterInboxFetched.Emit(&ev)
	}
}

// Toggle expands or collapses the email at index.
func (s *Session) Toggle(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Toggle(index)
}

// SetTab selects the body tab of the expanded email.
func (s *Session) SetTab(index int, tab mailview.Body) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetTab(index, tab)
}

// Email returns a copy of the email at index.
func (s *Session) Email(index int) (testmail.Email, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Item(index)
}

// State returns a copy of the listed emails with the stats and error of the last fetch, all
// taken at the same instant.
func (s *Session) State() ([]testmail.Email, Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Items()), s.stats, s.lastErr
}

// CopySource returns the raw body a copy of kind would place on the clipboard.
func (s *Session) CopySource(index int, kind mailview.Body) (string, error) {
	email, ok := s.Email(index)
	if !ok {
		return "", mailview.ErrNoSuchEmail
	}
	return mailview.CopySource(email, kind)
}

// Copy writes the body of the email at index to cb and records the outcome as a notice.
func (s *Session) Copy(index int, kind mailview.Body, cb mailview.Clipboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := mailview.CopyBody(s.state, index, kind, cb)
	switch {
	case err == nil:
		s.notice = &Notice{Kind: NoticeSuccess, Key: i18n.Copied}
	case errors.Is(err, mailview.ErrNoContent):
		s.notice = &Notice{Kind: NoticeError, Key: i18n.NoContentCopy}
	default:
		s.notice = &Notice{Kind: NoticeError, Key: i18n.CopyFailed}
	}
	return err
}

// Settings returns the saved settings.
func (s *Session) Settings() settings.Settings {
	return s.store.Get()
}

// UpdateSettings saves the connection fields, leaving UI preferences unchanged.
func (s *Session) UpdateSettings(apiKey, namespace, tag string) error {
	_, err := s.store.Update(func(v *settings.Settings) {
		v.APIKey = apiKey
		v.Namespace = namespace
		v.Tag = tag
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Warn().Str("module", "viewer").Err(err).Msg("Failed to save settings")
		s.notice = &Notice{Kind: NoticeError, Text: err.Error()}
		return err
	}
	s.notice = &Notice{Kind: NoticeSuccess, Key: i18n.SettingsSaved}
	return nil
}

// SetLanguage persists the UI language.
func (s *Session) SetLanguage(lang i18n.Lang) error {
	_, err := s.store.Update(func(v *settings.Settings) {
		v.Lang = string(lang)
	})
	return err
}

// SetTheme persists the UI theme.
func (s *Session) SetTheme(theme settings.Theme) error {
	_, err := s.store.Update(func(v *settings.Settings) {
		v.Theme = string(theme)
	})
	return err
}

// Language returns the saved UI language, or fallback when none has been chosen.
func (s *Session) Language(fallback i18n.Lang) i18n.Lang {
	if saved := s.store.Get().Lang; saved != "" {
		return i18n.Parse(saved)
	}
	return fallback
}
