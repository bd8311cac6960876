// Package event holds the payloads passed to extension listeners.
package event

import "time"

// InboxFetched describes the outcome of one fetch of the remote inbox.
type InboxFetched struct {
	Namespace string
	Tag       string
	Count     int // Total reported by the server.
	Offset    int
	Limit     int
	Listed    int // Emails kept in the list after filtering.
	Error     string
	Time      time.Time // When the fetch completed.
}

// Failed is true when the fetch did not produce a list.
func (f InboxFetched) Failed() bool {
	return f.Error != ""
}

// EmailSummary contains the header data of an email about to be listed.
type EmailSummary struct {
	Position    int
	From        string
	To          string
	Subject     string
	Tag         string
	Date        time.Time
	HasText     bool
	HasHTML     bool
	Attachments int
}

// ListDecision is a listener's verdict on whether an email appears in the list.
type ListDecision struct {
	Keep bool
}
