package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"story_web/internal/metrics"
	"story_web/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	UserID   uint            // 收件者用戶 ID
	SendChan chan []byte     // 消息發送通道，用於異步傳送消息
	once     sync.Once
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.SendChan)
	})
}

// WebSocketService 管理通知連線，依用戶分組
type WebSocketService struct {
	clients    map[uint]map[*Client]bool // 兩層 map: userID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
	logger     *zap.Logger
}

// NewWebSocketService 創建並初始化新的 WebSocket 服務
func NewWebSocketService(logger *zap.Logger) *WebSocketService {
	return &WebSocketService{
		clients: make(map[uint]map[*Client]bool),
		logger:  logger.Named("WebSocketService"),
	}
}

// HandleConnection 處理新的 WebSocket 連接，直到連線關閉才返回
func (s *WebSocketService) HandleConnection(conn *websocket.Conn, userID uint) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		SendChan: make(chan []byte, sendBufferSize),
	}

	s.addClient(client)
	defer func() {
		s.removeClient(client)
		client.close()
	}()

	go s.writePump(client)
	s.readPump(client)
}

// readPump 只負責維持心跳與偵測斷線，客戶端送來的內容會被忽略
func (s *WebSocketService) readPump(client *Client) {
	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket unexpected close", zap.Uint("userID", client.UserID), zap.Error(err))
			}
			return
		}
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (s *WebSocketService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PushNotification 把通知推送給該用戶所有在線連線，盡力而為
func (s *WebSocketService) PushNotification(userID uint, notification *models.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		s.logger.Error("notification encoding error", zap.Error(err))
		return
	}
	s.send(userID, payload)
}

// send 在讀鎖內投遞，確保通道只會在客戶端移出 map 之後才關閉
func (s *WebSocketService) send(userID uint, payload []byte) {
	var slow []*Client

	s.clientsMux.RLock()
	clients := s.clients[userID]
	if len(clients) == 0 {
		metrics.NotificationsPushedTotal.WithLabelValues("offline").Inc()
	}
	for client := range clients {
		select {
		case client.SendChan <- payload:
			metrics.NotificationsPushedTotal.WithLabelValues("queued").Inc()
		default:
			slow = append(slow, client)
		}
	}
	s.clientsMux.RUnlock()

	// 客戶端消息隊列已滿，關閉連接
	for _, client := range slow {
		metrics.NotificationsPushedTotal.WithLabelValues("dropped").Inc()
		s.logger.Warn("websocket client too slow, disconnecting", zap.Uint("userID", userID))
		s.removeClient(client)
		client.Conn.Close()
	}
}

// addClient 安全地添加新的客戶端連接
func (s *WebSocketService) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if s.clients[client.UserID] == nil {
		s.clients[client.UserID] = make(map[*Client]bool)
	}
	s.clients[client.UserID][client] = true
	metrics.WebSocketConnections.Inc()
}

// removeClient 安全地移除客戶端連接，重複呼叫不會出錯
func (s *WebSocketService) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if clients, ok := s.clients[client.UserID]; ok {
		if _, present := clients[client]; !present {
			return
		}
		delete(clients, client)
		metrics.WebSocketConnections.Dec()
		if len(clients) == 0 {
			delete(s.clients, client.UserID)
		}
	}
}

// UserConnections 獲取指定用戶的在線連線數量
func (s *WebSocketService) UserConnections(userID uint) int {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return len(s.clients[userID])
}
