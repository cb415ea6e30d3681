package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WSHandler upgrades HTTP requests to websocket sessions and keeps the
// registry in sync with connects and disconnects.
type WSHandler struct {
	registry *Registry
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler over the given registry
func NewWSHandler(registry *Registry) *WSHandler {
	return &WSHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin clients are allowed, same as the HTTP API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws?userId=... — the client supplies its identity as a
// handshake parameter; the registry entry lives until the transport closes.
func (h *WSHandler) Serve(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(userID, conn)
	h.registry.Connect(userID, client)

	go client.writePump()
	go client.readPump(func() {
		h.registry.Disconnect(client.SessionID())
	})

	return nil
}
