package model

import "time"

// MonitorInboxReplaced is the type of the event sent when a fetch replaced the list.
const MonitorInboxReplaced = "inbox-replaced"

// JSONEmailListV1 is the current list with the statistics of the fetch that produced it.
type JSONEmailListV1 struct {
	Stats    JSONStatsV1    `json:"stats"`
	Error    string         `json:"error,omitempty"`
	Fetching bool           `json:"fetching"`
	Emails   []*JSONEmailV1 `json:"emails"`
}

// JSONStatsV1 describes the last fetch.
type JSONStatsV1 struct {
	Fetched bool `json:"fetched"`
	Count   int  `json:"count"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Current int  `json:"current"`
}

// JSONEmailV1 contains the display fields of one email.  Text and HTML are only populated by the
// single email endpoint.
type JSONEmailV1 struct {
	Index        int                 `json:"index"`
	From         string              `json:"from"`
	SenderName   string              `json:"sender-name"`
	SenderEmail  string              `json:"sender-email"`
	Avatar       string              `json:"avatar"`
	To           string              `json:"to"`
	Subject      string              `json:"subject"`
	Preview      string              `json:"preview"`
	RelativeTime string              `json:"relative-time"`
	Tag          string              `json:"tag"`
	Date         time.Time           `json:"date"`
	PosixMillis  int64               `json:"posix-millis"`
	Expanded     bool                `json:"expanded"`
	HasText      bool                `json:"has-text"`
	HasHTML      bool                `json:"has-html"`
	Text         string              `json:"text,omitempty"`
	HTML         string              `json:"html,omitempty"`
	Attachments  []*JSONAttachmentV1 `json:"attachments"`
}

// JSONAttachmentV1 describes one attachment.
type JSONAttachmentV1 struct {
	Filename     string `json:"filename"`
	ContentType  string `json:"content-type"`
	Size         int64  `json:"size"`
	SizeText     string `json:"size-text"`
	DownloadLink string `json:"download-link,omitempty"`
}

// JSONFetchResultV1 is the outcome of a fetch request.
type JSONFetchResultV1 struct {
	Listed int    `json:"listed"`
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Error  string `json:"error,omitempty"`
}

// JSONMonitorEventV1 is pushed to monitor websockets.
type JSONMonitorEventV1 struct {
	Type        string `json:"type"`
	Namespace   string `json:"namespace"`
	Tag         string `json:"tag,omitempty"`
	Count       int    `json:"count"`
	Listed      int    `json:"listed"`
	Error       string `json:"error,omitempty"`
	PosixMillis int64  `json:"posix-millis"`
}
