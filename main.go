package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-booking/cache"
	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/routes"
	"hotel-booking/services"
	"hotel-booking/utils"
)

func main() {
	log := utils.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	cfg := config.Load(log)
	log = utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Database connect failed")
	}
	log.Info("✅ Database connection established and migrations applied")

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("⚠️  Redis unreachable; availability cache disabled")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			log.WithField("addr", cfg.RedisAddr).Info("✅ Redis availability cache enabled")
		}
		cancel()
	}
	availability := cache.NewAvailabilityCache(redisClient, cfg.CacheTTL)

	bookingService := services.NewBookingService(db, availability, log)
	roomService := services.NewRoomService(db)

	bookingController := controllers.NewBookingController(bookingService, log)
	roomController := controllers.NewRoomController(roomService, log)

	if cfg.AdminToken == "" {
		log.Warn("⚠️  ADMIN_API_TOKEN not set; /api is unauthenticated")
	}
	router := routes.SetupRouter(bookingController, roomController, routes.Options{
		CORSOrigins: cfg.CORSOrigins,
		AdminToken:  cfg.AdminToken,
		Log:         log,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("🚀 Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("❌ ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Warn("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("❌ Server forced to shutdown")
	}
	closeResources(log, db, redisClient)

	log.Info("✅ Server stopped gracefully")
}

func closeResources(log logrus.FieldLogger, db *gorm.DB, rc *redis.Client) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}
	if rc != nil {
		if err := rc.Close(); err != nil {
			log.WithError(err).Warn("closing redis")
		}
	}
}
