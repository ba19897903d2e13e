package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the connection and keeps it registered on hub
// until the client goes away.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Only same-origin pages may connect.
		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			hub.logger.Warn("accept websocket", "error", err, "remote", r.RemoteAddr)
			return
		}

		client := NewClient(hub, conn)
		hub.logger.Debug("client connected", "clients", hub.ClientCount()+1)
		client.Run(r.Context())
		hub.logger.Debug("client disconnected", "clients", hub.ClientCount())
	}
}
