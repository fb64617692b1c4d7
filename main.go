package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"telemed/config"
	_ "telemed/docs"
	"telemed/internal/repository"
	"telemed/internal/service"
	"telemed/internal/storage"
	"telemed/internal/transport/rest"
	"telemed/internal/transport/websocket"
	"telemed/pkg/database"
	"telemed/pkg/logger"
	"telemed/pkg/metrics"
)

// @title Telemed Consultation API
// @version 1.0
// @description Real-time consultation orchestration: lifecycle, waiting room, presence, events, providers

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("object storage ready", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("object storage not configured, attachments are disabled")
	}

	repos := repository.NewRepositories(db)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, provider cache disabled", zap.Error(err))
		} else {
			repos.Provider = repository.NewCachedProviderRepository(repos.Provider, rdb, cfg.Redis.ProviderCacheTTL)
			log.Info("provider config cache ready", zap.String("addr", cfg.Redis.Addr))
		}
	}

	channelMetrics := metrics.NewChannelMetrics(nil)
	hub := websocket.NewHub(log, channelMetrics)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		Publisher:   hub,
		FileStorage: fileStorage,
	})

	hub.SetMessageService(services.Message)
	go hub.Run()

	handler := rest.NewHandler(services, log, cfg, hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("failed to stop the server", zap.Error(err))
	}

	log.Info("server stopped")
}
