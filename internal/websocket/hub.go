package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

const (
	// Rate limiting: 최대 메시지 수 (1초당)
	maxMessagesPerSecond = 10

	sendBufferSize = 256
)

// ErrHubBusy 전달 큐가 가득 참
var ErrHubBusy = errors.New("websocket hub delivery queue is full")

// ClientMessage 클라이언트로부터 받은 메시지
type ClientMessage struct {
	Type string `json:"type"` // ping
}

// Client WebSocket 클라이언트 (사용자의 세션 하나)
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte

	messageCount  int       // 최근 1초간 받은 메시지 수
	lastResetTime time.Time // 마지막 카운터 리셋 시간
	rateMu        sync.Mutex
}

// NewClient 클라이언트 생성
func NewClient(hub *Hub, conn *Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, sendBufferSize),
	}
}

type delivery struct {
	userID  uint
	message []byte
}

// Hub 사용자별 WebSocket 연결 관리자 (실시간 알림 전달)
type Hub struct {
	// 등록된 클라이언트들 (UserID -> []*Client - 멀티 디바이스 지원)
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	mu sync.RWMutex
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		deliver:    make(chan delivery, 1024),
	}
}

// Run Hub 실행 (ctx 종료 시 모든 연결 정리)
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			// 멀티 디바이스 지원: 클라이언트 리스트에 추가
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.deliver:
			h.mu.RLock()
			clientList := h.clients[d.userID]
			var stale []*Client
			// 멀티 디바이스: 모든 세션에 전송
			for _, client := range clientList {
				select {
				case client.Send <- d.message:
				default:
					stale = append(stale, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range stale {
				logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
					"user_id": client.UserID,
				})
				h.remove(client)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientList, ok := h.clients[client.UserID]
	if !ok {
		return
	}

	// 해당 클라이언트만 리스트에서 제거
	newList := make([]*Client, 0, len(clientList))
	found := false
	for _, c := range clientList {
		if c == client {
			found = true
			continue
		}
		newList = append(newList, c)
	}
	if !found {
		return
	}

	if len(newList) == 0 {
		// 마지막 세션이면 맵에서 삭제
		delete(h.clients, client.UserID)
	} else {
		h.clients[client.UserID] = newList
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"user_id":            client.UserID,
		"remaining_sessions": len(newList),
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clientList := range h.clients {
		for _, client := range clientList {
			close(client.Send)
		}
		delete(h.clients, userID)
	}
}

// Register 클라이언트 등록
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister 클라이언트 등록 해제
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Attach 업그레이드된 연결을 사용자 세션으로 등록하고 송수신 루프 시작
func (h *Hub) Attach(conn *Conn, userID uint) *Client {
	client := NewClient(h, conn, userID)
	h.Register(client)

	go client.WritePump()
	go client.ReadPump()
	return client
}

// SendToUser 사용자의 모든 세션에 메시지 전송 (오프라인이면 무시)
func (h *Hub) SendToUser(userID uint, message interface{}) error {
	if !h.IsUserOnline(userID) {
		return nil
	}

	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	select {
	case h.deliver <- delivery{userID: userID, message: data}:
		return nil
	default:
		logger.Warn("Delivery channel full, message dropped", map[string]interface{}{
			"user_id": userID,
		})
		return ErrHubBusy
	}
}

// Push 저장된 알림을 수신자에게 실시간 전송
func (h *Hub) Push(_ context.Context, n *model.Notification, unreadCount int64) error {
	return h.SendToUser(n.RecipientID, model.NewNotificationEvent(n, unreadCount))
}

// DeliverEvent 다른 서버에서 발행된 알림 이벤트를 로컬 세션에 전달
func (h *Hub) DeliverEvent(event model.NotificationEvent) {
	if event.Notification == nil {
		return
	}
	if err := h.SendToUser(event.Notification.RecipientID, event); err != nil {
		logger.Warn("Failed to deliver notification event", map[string]interface{}{
			"recipient_id": event.Notification.RecipientID,
			"error":        err.Error(),
		})
	}
}

// IsUserOnline 사용자 온라인 여부 확인
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// SessionCount 사용자의 연결된 세션 수
func (h *Hub) SessionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// HandleClientMessage 클라이언트 메시지 처리
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	// Rate limiting 체크
	client.rateMu.Lock()
	now := time.Now()
	if now.Sub(client.lastResetTime) >= time.Second {
		// 1초가 지났으면 카운터 리셋
		client.messageCount = 0
		client.lastResetTime = now
	}
	client.messageCount++
	count := client.messageCount
	client.rateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"user_id": client.UserID,
			"count":   count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"user_id": client.UserID,
			"error":   err.Error(),
		})
		return
	}

	if msg.Type == "ping" {
		if err := h.SendToUser(client.UserID, map[string]string{"type": "pong"}); err != nil {
			logger.Warn("Failed to answer ping", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}
