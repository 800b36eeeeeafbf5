package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"story_web/internal/api"
	"story_web/internal/logger"
	"story_web/internal/models"
	"story_web/internal/repository"
	"story_web/internal/service"
	"story_web/internal/storage"
	"story_web/internal/utils"
	"story_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(models.All()...); err != nil {
		zapLogger.Fatal("Failed to auto migrate database", zap.Error(err))
	}

	rdb, err := storage.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// 初始化 repositories 與 services
	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	repos := repository.NewRepositories(db, rdb)
	services := service.NewServices(repos, tokens, cfg.Server.MediaRoot, zapLogger)

	if err := services.CategoryService.Seed(context.Background(), cfg.Categories); err != nil {
		zapLogger.Fatal("Failed to seed categories", zap.Error(err))
	}

	// 設置 Gin 路由
	r := gin.New()
	r.Use(gin.Recovery())
	api.SetupRoutes(r, services, tokens, cfg.Server, zapLogger)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
}
