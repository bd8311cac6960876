package testmail

import "time"

// ResultSuccess is the result value reported by a successful retrieval.
const ResultSuccess = "success"

// Inbox is the response envelope returned by the retrieval endpoint.
type Inbox struct {
	Result  string  `json:"result"`
	Message string  `json:"message"`
	Count   int     `json:"count"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
	Emails  []Email `json:"emails"`
}

// Email is a single message as delivered by the retrieval endpoint.  Empty strings denote
// absent fields.
type Email struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	Subject      string       `json:"subject"`
	Text         string       `json:"text"`
	HTML         string       `json:"html"`
	Timestamp    int64        `json:"timestamp"`
	Tag          string       `json:"tag"`
	Namespace    string       `json:"namespace,omitempty"`
	EnvelopeFrom string       `json:"envelope_from,omitempty"`
	EnvelopeTo   string       `json:"envelope_to,omitempty"`
	DownloadURL  string       `json:"downloadUrl,omitempty"`
	Attachments  []Attachment `json:"attachments"`
}

// Attachment describes a file attached to an Email.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// Time converts the epoch millisecond timestamp into a time.Time.
func (e *Email) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
