package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"story_web/internal/utils"
)

// ContextUserID 驗證後的用戶 ID 存在 gin.Context 中的鍵
const ContextUserID = "userID"

// AuthMiddleware 是一個 Gin 中間件，用於驗證請求的 JWT token
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		// 解析 JWT token
		claims, err := tokens.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// 將用戶信息設置到上下文中
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 有帶合法 token 時設定用戶，沒有帶時以匿名身分繼續。
// 帶了但無效的 token 仍然回 401。
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	required := AuthMiddleware(tokens)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// bearerToken 接受 "Bearer <token>" 以及前端使用的 "JWT <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	scheme := parts[0]
	if !strings.EqualFold(scheme, "Bearer") && scheme != "JWT" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserID 取得目前請求的用戶 ID，匿名時回傳 0
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
