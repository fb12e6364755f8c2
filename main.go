package main

import (
	"ClassFeed/config"
	"ClassFeed/controllers"
	"ClassFeed/logger"
	"ClassFeed/middlewares"
	"ClassFeed/repositories/impl"
	"ClassFeed/routes"
	"ClassFeed/services"
	"ClassFeed/websocket"
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
)

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	cfg := config.Load()

	log, err := logger.Init(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := config.InitDatabase(cfg); err != nil {
		zap.L().Fatal("database init failed", zap.Error(err))
	}
	sqlDB, err := config.DB.DB()
	if err != nil {
		zap.L().Fatal("database handle unavailable", zap.Error(err))
	}
	controllers.SetHealthCheck("database", sqlDB)

	// Initialize repositories
	messageRepo := impl.NewMessageRepository(config.DB)
	userRepo := impl.NewUserRepository(config.DB)
	classroomRepo := impl.NewClassroomRepository(config.DB)

	// Realtime delivery: the local hub always, Redis fan-out across
	// instances and FCM topics when configured.
	hub := websocket.NewHub()
	go hub.Run(ctx)
	controllers.SetWebSocketHub(hub)

	var notifiers services.MultiNotifier

	redisClient, err := config.InitRedis(ctx, cfg)
	if err != nil {
		zap.L().Fatal("redis init failed", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		controllers.SetHealthCheck("redis", redisPinger{client: redisClient})

		redisNotifier := services.NewRedisNotifier(redisClient)
		notifiers = append(notifiers, services.Instrumented("redis", redisNotifier))
		go func() {
			if err := redisNotifier.Relay(ctx, services.Instrumented("websocket", hub)); err != nil && !errors.Is(err, context.Canceled) {
				zap.L().Error("redis relay stopped", zap.Error(err))
			}
		}()
		zap.L().Info("realtime fan-out through redis")
	} else {
		notifiers = append(notifiers, services.Instrumented("websocket", hub))
	}

	if cfg.FirebaseCredentialsPath != "" {
		fcm, err := services.GetMessagingClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			zap.L().Error("firebase messaging disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, services.Instrumented("fcm", services.NewFCMNotifier(fcm)))
		}
	}

	// Initialize services
	messageService := services.NewMessageService(
		messageRepo,
		userRepo,
		classroomRepo,
		services.NewVisualisationFormatter(),
		services.NewTwitterPoster(cfg.TwitterAPIURL),
		notifiers,
		cfg.TwitterEnabled,
	)
	controllers.SetMessageService(messageService)
	zap.L().Info("social posting", zap.Bool("enabled", cfg.TwitterEnabled))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), middlewares.Metrics())

	routes.RegisterRoutes(r, routes.Options{
		JWTSecret:   []byte(cfg.JWTSecret),
		RateLimiter: middlewares.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}
