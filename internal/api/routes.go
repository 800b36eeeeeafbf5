package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"story_web/internal/api/handlers"
	"story_web/internal/middleware"
	"story_web/internal/service"
	"story_web/internal/utils"
	"story_web/pkg/config"
)

func SetupRoutes(r *gin.Engine, services *service.Services, tokens *utils.TokenManager, cfg config.ServerConfig, logger *zap.Logger) {
	handlers.RegisterValidators()

	r.Use(middleware.RequestID(), middleware.ZapLogger(logger), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.UserService)
	categoryHandler := handlers.NewCategoryHandler(services.CategoryService)
	storyHandler := handlers.NewStoryHandler(services.StoryService)
	characterHandler := handlers.NewCharacterHandler(services.CharacterService)
	episodeHandler := handlers.NewEpisodeHandler(services.EpisodeService)
	messageHandler := handlers.NewMessageHandler(services.MessageService)
	commentHandler := handlers.NewCommentHandler(services.CommentService)
	notificationHandler := handlers.NewNotificationHandler(services.NotificationService)
	mediaHandler := handlers.NewMediaHandler(services.MediaService)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketService, tokens, cfg.CORSOrigins, logger)

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "path not found", "code": "not_found"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(service.MediaURLPrefix, services.MediaService.Root())
	r.GET("/ws/notifications", wsHandler.HandleNotifications)

	// API 路由群組
	api := r.Group("/api")

	// 公開路由
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/token/verify", authHandler.VerifyToken)
		api.POST("/token/refresh", authHandler.RefreshToken)
		api.GET("/categories", categoryHandler.List)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	// 匿名可讀，登入後會帶上按讚、收藏狀態與草稿
	public := api.Group("/")
	public.Use(middleware.OptionalAuth(tokens))
	{
		public.GET("/stories", storyHandler.List)
		public.GET("/stories/:id", storyHandler.Get)
		public.GET("/stories/:id/episodes", episodeHandler.List)
		public.GET("/stories/:id/comments", commentHandler.List)
		public.GET("/episodes/:id", episodeHandler.Get)
		public.GET("/episodes/:id/messages", messageHandler.List)
		public.GET("/messages/:id", messageHandler.Get)
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(tokens))
	{
		authorized.GET("/users/me", authHandler.Me)

		notifications := authorized.Group("/users/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/count-unread", notificationHandler.CountUnread)
			notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		}

		stories := authorized.Group("/stories")
		{
			stories.GET("/mine", storyHandler.Mine)
			stories.GET("/saved", storyHandler.Saved)
			stories.POST("", storyHandler.Create)
			stories.PUT("/:id", storyHandler.Update)
			stories.DELETE("/:id", storyHandler.Delete)
			stories.POST("/:id/publish", storyHandler.Publish)
			stories.POST("/:id/like", storyHandler.ToggleLike)
			stories.POST("/:id/save", storyHandler.Save)
			stories.DELETE("/:id/save", storyHandler.Unsave)

			stories.GET("/:id/characters", characterHandler.List)
			stories.POST("/:id/characters", characterHandler.Create)
			stories.POST("/:id/episodes", episodeHandler.Create)
			stories.POST("/:id/comments", commentHandler.Create)
		}

		authorized.PATCH("/characters/:id", characterHandler.Update)
		authorized.PUT("/characters/:id", characterHandler.Update)
		authorized.DELETE("/characters/:id", characterHandler.Delete)

		authorized.PUT("/episodes/:id", episodeHandler.Update)
		authorized.DELETE("/episodes/:id", episodeHandler.Delete)
		authorized.POST("/episodes/:id/messages", messageHandler.Create)

		// 訊息排序：只改 order 用 PATCH /order，其餘欄位用 PUT/PATCH
		authorized.PUT("/messages/:id", messageHandler.Update)
		authorized.PATCH("/messages/:id", messageHandler.Update)
		authorized.PATCH("/messages/:id/order", messageHandler.Reorder)
		authorized.DELETE("/messages/:id", messageHandler.Delete)

		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/like", commentHandler.ToggleLike)

		authorized.POST("/media", mediaHandler.Upload)
	}
}
