package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"story_web/internal/service"
	"story_web/internal/utils"
)

// WebSocketHandler 處理通知的 WebSocket 連接
type WebSocketHandler struct {
	wsService *service.WebSocketService
	tokens    *utils.TokenManager
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例；allowedOrigins 為空時接受任何來源
func NewWebSocketHandler(wsService *service.WebSocketService, tokens *utils.TokenManager, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		wsService: wsService,
		tokens:    tokens,
		logger:    logger.Named("WebSocketHandler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// HandleNotifications 瀏覽器無法自訂 WebSocket 標頭，因此 token 放在 query string
func (h *WebSocketHandler) HandleNotifications(c *gin.Context) {
	claims, err := h.tokens.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Uint("userID", claims.UserID), zap.Error(err))
		return
	}

	h.wsService.HandleConnection(conn, claims.UserID)
}
