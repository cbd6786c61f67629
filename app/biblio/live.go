package biblio

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/session"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

// liveState is the message pushed on the live channel. It carries no token.
type liveState struct {
	Authenticated bool         `json:"authenticated"`
	Role          session.Role `json:"role,omitempty"`
	Hydrated      bool         `json:"hydrated"`
}

func stateOf(store *session.Store, snap session.Snapshot) liveState {
	return liveState{
		Authenticated: snap.IsAuthenticated(),
		Role:          snap.Role(),
		Hydrated:      store.Hydration() == session.HydrationReady,
	}
}

// live streams the client's session state over a websocket: once on
// connect and after every transition. The channel never issues a client
// cookie; a request without one is rejected.
func (a *App) live(ctx *Context) handler.Response {
	store, id, err := a.transport.Lookup(ctx.Request())
	if err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	return response.WebSocket(func(c context.Context, conn *websocket.Conn) error {
		// Latest value wins; subscribers must not block the mutating goroutine.
		changes := make(chan liveState, 1)
		unsubscribe := store.Subscribe(func(snap session.Snapshot) {
			st := stateOf(store, snap)
			st.Hydrated = true
			select {
			case changes <- st:
			default:
				select {
				case <-changes:
				default:
				}
				select {
				case changes <- st:
				default:
				}
			}
		})
		defer unsubscribe()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(livePongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		send := func(st liveState) error {
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			return conn.WriteJSON(st)
		}
		if err := send(stateOf(store, store.Read())); err != nil {
			return err
		}

		ping := time.NewTicker(livePingPeriod)
		defer ping.Stop()
		for {
			select {
			case st := <-changes:
				if err := send(st); err != nil {
					return err
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
					return err
				}
			case <-closed:
				return nil
			case <-c.Done():
				return nil
			}
		}
	},
		response.WithWSErrorHandler(func(c context.Context, err error) {
			a.logger.DebugContext(c, "live session channel closed",
				logger.Component("live"),
				logger.Error(err),
			)
		}),
		response.WithWSOnConnect(func(c context.Context, _ *websocket.Conn) error {
			a.logger.DebugContext(c, "live session channel opened",
				logger.Component("live"),
				logger.ClientID(id),
			)
			return nil
		}),
	)
}
