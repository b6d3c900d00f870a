package analysis

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
)

const (
	// How long the socket waits for the matching upload to register before
	// giving up. The upload page opens the socket right as the form posts.
	attachWindow = 30 * time.Second
	pollInterval = 500 * time.Millisecond
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RegisterProgressRoutes mounts the live progress socket.
func (h *Handler) RegisterProgressRoutes(r chi.Router) {
	r.Get("/analyses/{analysisID}/progress", h.handleProgress)
}

// handleProgress pushes labeling progress for one run over a websocket. The
// run itself stays synchronous inside the upload request; this socket only
// observes its progress entry.
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysisID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[progress] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	deadline := time.Now().Add(attachWindow)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last model.Progress
	seen := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p, ok := h.svc.Progress(id)
			if !ok {
				if time.Now().After(deadline) {
					writeProgress(conn, model.Progress{Stage: model.StageFailed})
					return
				}
				continue
			}

			if seen && p == last {
				continue
			}
			seen, last = true, p

			if !writeProgress(conn, p) {
				return
			}
			if p.Stage == model.StageDone || p.Stage == model.StageFailed {
				return
			}
		}
	}
}

func writeProgress(conn *websocket.Conn, p model.Progress) bool {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(p); err != nil {
		log.Printf("[progress] write failed: %v", err)
		return false
	}
	return true
}
