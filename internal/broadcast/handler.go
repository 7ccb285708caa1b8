package broadcast

import (
	"net/http"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"

	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP connections to WebSocket and wires them to the hub.
type Handler struct {
	hub  *Hub
	logg *logger.Logger
}

func NewHandler(hub *Hub, logg *logger.Logger) *Handler {
	return &Handler{hub: hub, logg: logg}
}

// Connect upgrades the request, registers the client and starts the pumps.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logg != nil {
			h.logg.Warn(h.logg.WithField(r.Context(), "error", err.Error()), "broadcast.upgrade_failed")
		}
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 256),
	}

	h.hub.Register(client)

	go h.writePump(client, ws)
	go h.readPump(client, ws)
}

// readPump drains inbound frames until the peer goes away. Clients only
// listen; inbound payloads are discarded.
func (h *Handler) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		h.hub.Unregister(client)
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}
