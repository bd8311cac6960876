package extension

import (
	"github.com/tmviewer/tmviewer/pkg/extension/event"
)

// Host defines extension points for the viewer.
type Host struct {
	Events *Events
}

// Events defines all the event types supported by the extension host.
//
// Before-events run synchronously while a fetch result is being applied, the first listener to
// respond with a non-nil value determines the outcome.  After-events are delivered asynchronously
// once the session state has been updated.
type Events struct {
	AfterInboxFetched AsyncEventBroker[event.InboxFetched]
	BeforeEmailListed EventBroker[event.EmailSummary, event.ListDecision]
}

// NewHost creates a new extension host.
func NewHost() *Host {
	return &Host{Events: &Events{}}
}
