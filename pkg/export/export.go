// Package export converts fetched emails back into RFC 5322 messages.
package export

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/jhillyerd/enmime/v2"
	"github.com/tmviewer/tmviewer/pkg/stringutil"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

const (
	// inboxDomain receives mail for every namespace.
	inboxDomain = "inbox.testmail.app"

	// unknownSender is used when the email carries no parsable sender.
	unknownSender = "unknown@invalid"

	defaultSubject = "(no subject)"
)

// Write encodes e as an RFC 5322 message to w.
func Write(w io.Writer, e testmail.Email) error {
	part, err := builder(e).Build()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	return part.Encode(w)
}

// Bytes returns e encoded as an RFC 5322 message.
func Bytes(e testmail.Email) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Write(buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename suggests a file name for the exported email.
func Filename(e testmail.Email) string {
	if e.Timestamp > 0 {
		return "email-" + e.Time().UTC().Format("20060102-150405") + ".eml"
	}
	return "email.eml"
}

func builder(e testmail.Email) enmime.MailBuilder {
	b := enmime.Builder()

	from := sender(e)
	b = b.From(from.Name, from.Address)
	b = b.ToAddrs(recipients(e))

	subject := strings.TrimSpace(e.Subject)
	if subject == "" {
		subject = defaultSubject
	}
	b = b.Subject(subject)

	date := time.Now()
	if e.Timestamp > 0 {
		date = e.Time().UTC()
	}
	b = b.Date(date)

	if e.Tag != "" {
		b = b.Header("X-Testmail-Tag", e.Tag)
	}
	if e.Namespace != "" {
		b = b.Header("X-Testmail-Namespace", e.Namespace)
	}
	if e.Text != "" || e.HTML == "" {
		b = b.Text([]byte(e.Text))
	}
	if e.HTML != "" {
		b = b.HTML([]byte(e.HTML))
	}
	return b
}

func sender(e testmail.Email) mail.Address {
	for _, candidate := range []string{e.From, e.EnvelopeFrom} {
		if addrs := stringutil.ParseAddressList(candidate); len(addrs) > 0 {
			return addrs[0]
		}
	}
	return mail.Address{Address: unknownSender}
}

func recipients(e testmail.Email) []mail.Address {
	for _, candidate := range []string{e.To, e.EnvelopeTo} {
		if addrs := stringutil.ParseAddressList(candidate); len(addrs) > 0 {
			return addrs
		}
	}
	local := e.Namespace
	if local == "" {
		local = "unknown"
	}
	if e.Tag != "" {
		local += "." + e.Tag
	}
	return []mail.Address{{Address: local + "@" + inboxDomain}}
}
