package mailview

import (
	"errors"
	"strings"

	"github.com/tmviewer/tmviewer/pkg/testmail"
)

var (
	// ErrNoContent is returned when the requested body is absent.
	ErrNoContent = errors.New("no content to copy")

	// ErrNoSuchEmail is returned for an index outside the list.
	ErrNoSuchEmail = errors.New("no such email")
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// CopySource returns the raw body to copy for kind.  Requesting html falls back to the text
// body when there is no html; requesting text never falls back to html.
func CopySource(email testmail.Email, kind Body) (string, error) {
	if kind == BodyHTML && strings.TrimSpace(email.HTML) != "" {
		return email.HTML, nil
	}
	if email.Text != "" {
		return email.Text, nil
	}
	return "", ErrNoContent
}

// CopyBody writes the raw, unescaped body of the email at index to cb.  cb is not touched when
// the body is absent.
func CopyBody(state *ListState, index int, kind Body, cb Clipboard) error {
	email, ok := state.Item(index)
	if !ok {
		return ErrNoSuchEmail
	}
	content, err := CopySource(email, kind)
	if err != nil {
		return err
	}
	return cb.WriteText(content)
}
