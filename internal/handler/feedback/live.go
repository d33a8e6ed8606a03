package feedback

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	feedbackService "github.com/mohitvuyala/portfolio/backend/internal/service/feedback"
)

const (
	liveReadTimeout  = 60 * time.Second
	liveWriteTimeout = 10 * time.Second
	livePingInterval = 54 * time.Second
)

// LiveHandler 通过WebSocket推送新提交的反馈
type LiveHandler struct {
	hub      *feedbackService.Hub
	upgrader websocket.Upgrader
}

// NewLiveHandler 创建实时反馈处理器
func NewLiveHandler(hub *feedbackService.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *LiveHandler) RegisterRoutes(r chi.Router) {
	r.Get("/feedbacks/live", h.handleLive)
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// handleLive 处理WebSocket连接
func (h *LiveHandler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
		return nil
	})

	// Inbound frames are ignored; reading keeps control frames flowing and
	// notices when the client goes away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[websocket] read error: %v", err)
				}
				return
			}
		}
	}()

	log.Printf("[websocket] live feed subscriber connected")
	if err := h.send(conn, outgoingMessage{Type: "connected"}); err != nil {
		return
	}

	ticker := time.NewTicker(livePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-updates:
			if !ok {
				return
			}
			if err := h.send(conn, outgoingMessage{Type: "feedback", Data: record}); err != nil {
				log.Printf("[websocket] write failed: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *LiveHandler) send(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().Unix()
	conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteJSON(msg)
}
