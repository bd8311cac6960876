// Package msghub relays fetch outcomes to live monitors, keeping a short history for late joiners.
package msghub

import (
	"container/ring"
	"context"

	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/extension/event"
)

// Length of msghub operation queue
const opChanLen = 100

// Listener receives the contents of the history buffer, followed by new fetch events.
type Listener interface {
	Receive(ev event.InboxFetched) error
}

// Hub relays fetch events on to its listeners.
type Hub struct {
	// history buffer, points at the next slot to write.  Proceeding non-nil entry is oldest.
	history   *ring.Ring
	listeners map[Listener]struct{}
	opChan    chan func(h *Hub)
}

// New constructs a Hub which will cache historyLen events in memory for playback to future
// listeners, and subscribes it to the extension host's AfterInboxFetched event.
func New(historyLen int, extHost *extension.Host) *Hub {
	hub := &Hub{
		history:   ring.New(historyLen),
		listeners: make(map[Listener]struct{}),
		opChan:    make(chan func(h *Hub), opChanLen),
	}

	extHost.Events.AfterInboxFetched.AddListener("msghub", hub.Dispatch)

	return hub
}

// Start runs the Hub processing loop until ctx is canceled.
func (hub *Hub) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-hub.opChan:
			op(hub)
		}
	}
}

// Dispatch queues an event for broadcast.  The event is placed into the history buffer and then
// relayed to all registered listeners.
func (hub *Hub) Dispatch(ev event.InboxFetched) {
	hub.opChan <- func(h *Hub) {
		if h.history != nil {
			h.history.Value = ev
			h.history = h.history.Next()
		}

		// Listeners returning an error are dropped.
		for l := range h.listeners {
			if err := l.Receive(ev); err != nil {
				delete(h.listeners, l)
			}
		}
	}
}

// AddListener registers a listener, it is first sent the history buffer.
func (hub *Hub) AddListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		failed := false
		h.history.Do(func(v any) {
			if v != nil && !failed {
				failed = l.Receive(v.(event.InboxFetched)) != nil
			}
		})
		if !failed {
			h.listeners[l] = struct{}{}
		}
	}
}

// RemoveListener deletes a listener registration, it will cease to receive events.
func (hub *Hub) RemoveListener(l Listener) {
	hub.opChan <- func(h *Hub) {
		delete(h.listeners, l)
	}
}

// Sync blocks until the msghub has processed its queue up to this point.
func (hub *Hub) Sync() {
	done := make(chan struct{})
	hub.opChan <- func(h *Hub) {
		close(done)
	}
	<-done
}
