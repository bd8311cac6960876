package rest

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/extension/event"
	"github.com/tmviewer/tmviewer/pkg/msghub"
	"github.com/tmviewer/tmviewer/pkg/rest/model"
	"github.com/tmviewer/tmviewer/pkg/server/web"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Events buffered per socket before new ones are dropped.
	listenerQueueLen = 100
)

// errMonitorUnavailable is returned when the server runs without a message hub.
var errMonitorUnavailable = errors.New("live monitor is not enabled")

// options for gorilla connection upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// fetchListener relays fetch events from the msghub to one websocket.
type fetchListener struct {
	hub       *msghub.Hub
	c         chan event.InboxFetched // Queue of events from Receive()
	done      chan struct{}           // Closed by Close()
	closeOnce sync.Once
}

// newFetchListener creates a listener and registers it.
func newFetchListener(hub *msghub.Hub) *fetchListener {
	fl := &fetchListener{
		hub:  hub,
		c:    make(chan event.InboxFetched, listenerQueueLen),
		done: make(chan struct{}),
	}
	hub.AddListener(fl)
	return fl
}

// Receive queues an incoming event.  A slow socket loses events rather than stalling the hub.
func (fl *fetchListener) Receive(ev event.InboxFetched) error {
	select {
	case <-fl.done:
	case fl.c <- ev:
	default:
		log.Debug().Str("module", "rest").Msg("Monitor queue full, dropping event")
	}
	return nil
}

// WSReader makes sure the websocket client is still connected, discards any messages from client
func (fl *fetchListener) WSReader(conn *websocket.Conn) {
	slog := log.With().Str("module", "rest").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Logger()
	defer fl.Close()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		slog.Debug().Msg("Got pong")
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				// Unexpected close code
				slog.Warn().Err(err).Msg("Socket error")
			} else {
				slog.Debug().Msg("Closing socket")
			}
			break
		}
	}
}

// WSWriter pushes queued events and keep-alive pings until the listener is closed.
func (fl *fetchListener) WSWriter(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		fl.Close()
	}()

	for {
		select {
		case <-fl.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case ev := <-fl.c:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if conn.WriteJSON(monitorEvent(ev)) != nil {
				// Write failed
				return
			}
		case <-ticker.C:
			// Send ping
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if conn.WriteMessage(websocket.PingMessage, []byte{}) != nil {
				// Write error
				return
			}
			log.Debug().Str("module", "rest").Str("proto", "WebSocket").
				Str("remote", conn.RemoteAddr().String()).Msg("Sent ping")
		}
	}
}

// Close removes the listener registration.  Safe to call more than once.
func (fl *fetchListener) Close() {
	fl.closeOnce.Do(func() {
		close(fl.done)
		fl.hub.RemoveListener(fl)
	})
}

func monitorEvent(ev event.InboxFetched) *model.JSONMonitorEventV1 {
	return &model.JSONMonitorEventV1{
		Type:        model.MonitorInboxReplaced,
		Namespace:   ev.Namespace,
		Tag:         ev.Tag,
		Count:       ev.Count,
		Listed:      ev.Listed,
		Error:       ev.Error,
		PosixMillis: ev.Time.UnixMilli(),
	}
}

// MonitorV1 is a web handler which upgrades the connection to a websocket and notifies the client
// each time a fetch replaces the list.
func MonitorV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if ctx.MsgHub == nil {
		return errMonitorUnavailable
	}
	// Upgrade to Websocket.
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	web.ExpWebSocketConnectsCurrent.Add(1)
	defer func() {
		_ = conn.Close()
		web.ExpWebSocketConnectsCurrent.Add(-1)
	}()
	log.Debug().Str("module", "rest").Str("proto", "WebSocket").
		Str("remote", conn.RemoteAddr().String()).Msg("Upgraded to WebSocket")
	// Create, register listener; then interact with conn.
	fl := newFetchListener(ctx.MsgHub)
	go fl.WSWriter(conn)
	fl.WSReader(conn)
	return nil
}
