package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/rest/client"
	"github.com/tmviewer/tmviewer/pkg/rest/model"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/testmail"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

// source fetches the inbox on behalf of a command.  Every call performs a fresh fetch.
type source interface {
	List(ctx context.Context) (*listing, error)
	Email(ctx context.Context, index int) (testmail.Email, error)
}

// listing is the terminal friendly form of one fetched page.
type listing struct {
	Count   int
	Current int
	Offset  int
	Rows    []row
}

type row struct {
	Index       int
	Avatar      string
	Name        string
	Address     string
	Subject     string
	Preview     string
	When        string
	Tag         string
	Attachments int
}

// openSource returns a source for conf, reading through the REST API of a running viewer when
// serverURL is set.  The printer follows the saved language.
func openSource(conf *config.Root, serverURL string) (source, *i18n.Printer, error) {
	store := settings.Open(conf.Settings.SettingsPath())
	p := i18n.NewPrinter(i18n.Parse(store.Get().Lang))
	if serverURL != "" {
		c, err := client.New(serverURL, client.WithClientOptsTimeout(conf.API.Timeout))
		if err != nil {
			return nil, nil, err
		}
		return &remoteSource{client: c}, p, nil
	}

	tm, err := testmail.New(conf.API.BaseURL, testmail.WithTimeout(conf.API.Timeout))
	if err != nil {
		return nil, nil, err
	}
	session := viewer.NewSession(tm, store, nil, viewer.Config{
		Timeout: conf.API.Timeout,
		Limit:   conf.API.Limit,
	})
	return &localSource{session: session, printer: p}, p, nil
}

// localSource talks to the retrieval endpoint directly.
type localSource struct {
	session *viewer.Session
	printer *i18n.Printer
}

func (s *localSource) fetch(ctx context.Context) error {
	if _, err := s.session.Fetch(ctx); err != nil {
		return errors.New(viewer.ErrorMessage(err, s.printer))
	}
	return nil
}

func (s *localSource) List(ctx context.Context) (*listing, error) {
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	snap := s.session.Snapshot(viewer.SnapshotOptions{Fallback: s.printer.Lang()})
	l := &listing{
		Count:   snap.Stats.Count,
		Current: snap.Stats.Current,
		Offset:  snap.Stats.Offset,
		Rows:    make([]row, len(snap.List.Items)),
	}
	for i, item := range snap.List.Items {
		l.Rows[i] = row{
			Index:       item.Index,
			Avatar:      item.Avatar,
			Name:        item.SenderName,
			Address:     item.SenderEmail,
			Subject:     item.Subject,
			Preview:     item.Preview,
			When:        item.RelativeTime,
			Tag:         item.Tag,
			Attachments: len(snap.Emails[i].Attachments),
		}
	}
	return l, nil
}

func (s *localSource) Email(ctx context.Context, index int) (testmail.Email, error) {
	if err := s.fetch(ctx); err != nil {
		return testmail.Email{}, err
	}
	email, ok := s.session.Email(index)
	if !ok {
		return testmail.Email{}, mailview.ErrNoSuchEmail
	}
	return email, nil
}

// remoteSource reads through a running viewer, sharing its list with the browser UI.
type remoteSource struct {
	client *client.Client
}

func (s *remoteSource) fetch(ctx context.Context) error {
	_, err := s.client.Fetch(ctx)
	return err
}

func (s *remoteSource) List(ctx context.Context) (*listing, error) {
	if err := s.fetch(ctx); err != nil {
		return nil, err
	}
	list, err := s.client.ListEmails(ctx)
	if err != nil {
		return nil, err
	}
	if list.Error != "" {
		return nil, errors.New(list.Error)
	}
	return listingFromJSON(list), nil
}

func (s *remoteSource) Email(ctx context.Context, index int) (testmail.Email, error) {
	if err := s.fetch(ctx); err != nil {
		return testmail.Email{}, err
	}
	e, err := s.client.GetEmail(ctx, index)
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return testmail.Email{}, mailview.ErrNoSuchEmail
	}
	if err != nil {
		return testmail.Email{}, err
	}
	return emailFromJSON(e), nil
}

func listingFromJSON(list *model.JSONEmailListV1) *listing {
	l := &listing{
		Count:   list.Stats.Count,
		Current: list.Stats.Current,
		Offset:  list.Stats.Offset,
		Rows:    make([]row, len(list.Emails)),
	}
	for i, e := range list.Emails {
		l.Rows[i] = row{
			Index:       e.Index,
			Avatar:      e.Avatar,
			Name:        e.SenderName,
			Address:     e.SenderEmail,
			Subject:     e.Subject,
			Preview:     e.Preview,
			When:        e.RelativeTime,
			Tag:         e.Tag,
			Attachments: len(e.Attachments),
		}
	}
	return l
}

func emailFromJSON(e *model.JSONEmailV1) testmail.Email {
	email := testmail.Email{
		From:        e.From,
		To:          e.To,
		Subject:     e.Subject,
		Text:        e.Text,
		HTML:        e.HTML,
		Timestamp:   e.PosixMillis,
		Tag:         e.Tag,
		Attachments: make([]testmail.Attachment, len(e.Attachments)),
	}
	for i, a := range e.Attachments {
		email.Attachments[i] = testmail.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
			DownloadURL: a.DownloadLink,
		}
	}
	return email
}
