package response

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/biblio2ie/biblio/core/handler"
)

type wsConfig struct {
	upgrader     websocket.Upgrader
	onConnect    func(context.Context, *websocket.Conn) error
	onDisconnect func(context.Context, *websocket.Conn)
	onError      func(context.Context, error)
}

// WebSocketOption configures the WebSocket response.
type WebSocketOption func(*wsConfig)

func WithWSHandshakeTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) { c.upgrader.HandshakeTimeout = timeout }
}

func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(c *wsConfig) { c.upgrader.CheckOrigin = fn }
}

func WithWSOnConnect(fn func(context.Context, *websocket.Conn) error) WebSocketOption {
	return func(c *wsConfig) { c.onConnect = fn }
}

func WithWSOnDisconnect(fn func(context.Context, *websocket.Conn)) WebSocketOption {
	return func(c *wsConfig) { c.onDisconnect = fn }
}

func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) { c.onError = fn }
}

// WebSocket upgrades the connection and runs handle until it returns.
// Upgrade and handler failures go to the error callback; the HTTP response
// is already hijacked at that point, so they are never returned.
func WebSocket(handle func(context.Context, *websocket.Conn) error, opts ...WebSocketOption) handler.Response {
	cfg := &wsConfig{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()
		report := func(err error) {
			if cfg.onError != nil {
				cfg.onError(ctx, err)
			}
		}

		conn, err := cfg.upgrader.Upgrade(w, r, nil)
		if err != nil {
			report(err)
			return nil
		}
		defer func() {
			_ = conn.Close()
			if cfg.onDisconnect != nil {
				cfg.onDisconnect(ctx, conn)
			}
		}()

		if cfg.onConnect != nil {
			if err := cfg.onConnect(ctx, conn); err != nil {
				report(err)
				return nil
			}
		}

		if err := handle(ctx, conn); err != nil {
			report(err)
		}
		return nil
	}
}
