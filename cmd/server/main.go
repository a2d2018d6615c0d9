package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kazeyhaya/orkcord/internal/config"
	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/handler"
	"github.com/Kazeyhaya/orkcord/internal/history"
	"github.com/Kazeyhaya/orkcord/internal/hub"
	"github.com/Kazeyhaya/orkcord/internal/repository"
	"github.com/Kazeyhaya/orkcord/internal/service"
	"github.com/Kazeyhaya/orkcord/pkg/database"
	pkglog "github.com/Kazeyhaya/orkcord/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "orkcord",
	})
	logger := pkglog.L()

	// Database
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db,
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Channel history backend
	var historyLog history.Log
	switch cfg.History.Backend {
	case "redis":
		redisLog, err := history.NewRedisLog(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.History.Capacity)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisLog.Close()
		historyLog = redisLog
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis history backend ready")
	default:
		historyLog = history.NewMemoryLog(cfg.History.Capacity)
	}

	// Relay core
	wsHub := hub.NewHub(historyLog)
	chatSvc := service.NewChatService(wsHub)

	// Content core
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)

	feedSvc := service.NewFeedService(postRepo, followRepo, cfg.Feed.DefaultLimit, cfg.Feed.MaxLimit)
	postSvc := service.NewPostService(postRepo, commentRepo)
	socialSvc := service.NewSocialService(followRepo)

	// Router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	handler.NewWSHandler(wsHub, chatSvc, cfg.WebSocket).RegisterRoutes(r)
	handler.NewHTTPHandler(historyLog, feedSvc, postSvc, socialSvc).RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("orkcord starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}

	logger.Info().Msg("orkcord stopped")
}
