// Package stream 以 WebSocket 即時廣播轉帳通知
package stream

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JoeShih716/go-token-ledger/internal/app/token/domain"
)

const (
	// 每個訂閱者的送出緩衝，滿了直接丟棄該筆 (慢訂閱者不得拖慢帳本)
	clientBufferSize = 64
	writeTimeout     = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// transferPayload 推給訂閱者的 JSON 格式
type transferPayload struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// Hub 管理 WebSocket 訂閱者並廣播轉帳事件
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP 將 HTTP 連線升級為 WebSocket 並註冊為訂閱者
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade 已回應錯誤給客戶端
		return
	}

	send := make(chan []byte, clientBufferSize)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

// writeLoop 把佇列中的事件推給單一訂閱者，寫失敗即登出
func (h *Hub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for payload := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.unregister(conn)
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
}

// readLoop 只為了偵測客戶端斷線，收到的訊息一律忽略
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.unregister(conn)
			return
		}
	}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	if ok {
		close(send)
	}
	conn.Close()
}

// OnTransfer 實作 domain.TransferSink：序列化後廣播給所有訂閱者
// 佇列已滿的訂閱者直接略過這一筆，不阻塞
func (h *Hub) OnTransfer(ev domain.TransferEvent) {
	payload, err := json.Marshal(transferPayload{
		From:  ev.From.String(),
		To:    ev.To.String(),
		Value: ev.Value.Dec(),
	})
	if err != nil {
		log.Printf("stream: marshal transfer event failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, send := range h.clients {
		select {
		case send <- payload:
		default:
			// 慢訂閱者，略過
		}
	}
}

// ClientCount 目前訂閱者數量
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close 登出所有訂閱者並拒絕新連線
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
	}
	return nil
}

var _ domain.TransferSink = (*Hub)(nil)
