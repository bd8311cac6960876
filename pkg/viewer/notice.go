package viewer

import (
	"errors"

	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

// NoticeKind selects the styling of a transient notification.
type NoticeKind string

const (
	NoticeDefault NoticeKind = "default"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient notification shown once on the next render.  Either Key (with Args) or
// Text is set; Text carries server provided messages that have no translation.
type Notice struct {
	Kind NoticeKind
	Key  string
	Args []any
	Text string
}

// Message returns the notice text in the language of p.
func (n Notice) Message(p *i18n.Printer) string {
	if n.Text != "" {
		return n.Text
	}
	return p.T(n.Key, n.Args...)
}

// ErrorMessage maps a fetch or copy error to the text shown to the user.
func ErrorMessage(err error, p *i18n.Printer) string {
	var apiErr *testmail.APIError
	var netErr *testmail.NetworkError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, testmail.ErrMissingCredentials):
		return p.T(i18n.ErrMissingConfig)
	case errors.Is(err, ErrFetchInProgress):
		return p.T(i18n.FetchInProgress)
	case errors.Is(err, mailview.ErrNoContent):
		return p.T(i18n.NoContentCopy)
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return p.T(i18n.ErrFetch)
	case errors.As(err, &netErr):
		return p.T(i18n.NetworkError)
	}
	return p.T(i18n.ErrFetch)
}

// errorNotice builds the notification for err, keeping it translatable where possible.
func errorNotice(err error) *Notice {
	var apiErr *testmail.APIError
	switch {
	case errors.Is(err, testmail.ErrMissingCredentials):
		return &Notice{Kind: NoticeError, Key: i18n.ErrMissingConfig}
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return &Notice{Kind: NoticeError, Text: apiErr.Message}
	case errors.As(err, new(*testmail.NetworkError)):
		return &Notice{Kind: NoticeError, Key: i18n.NetworkError}
	}
	return &Notice{Kind: NoticeError, Key: i18n.ErrFetch}
}
