package http

import (
	"log"
	"net/http"

	"noukie-quiz-service/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler streams live play progress to coaching clients over websockets.
type WSHandler struct {
	hub      *app.ProgressHub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *app.ProgressHub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and relays progress snapshots for one
// session. The first message is the current snapshot; the stream ends after
// the finish snapshot or when the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.hub.Subscribe(sessionID)
	defer cancel()

	// Reader goroutine exists only to observe the close handshake.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case progress, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[app.PlayProgress]{Type: "progress", Payload: progress}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
			if progress.Finished {
				return
			}
		case <-readerDone:
			return
		}
	}
}
