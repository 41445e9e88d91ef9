package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"foodbox-be/internal/cache"
	"foodbox-be/internal/config"
	"foodbox-be/internal/db"
	"foodbox-be/internal/discovery"
	"foodbox-be/internal/favorite"
	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/logger"
	"foodbox-be/internal/order"
	"foodbox-be/internal/partner"
	"foodbox-be/internal/realtime"
	"foodbox-be/internal/server"
	"foodbox-be/internal/user"
)

const (
	sessionTTL      = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	rdb, err := cache.NewClient(cfg)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	hub := realtime.NewHub()

	partnerRepo := partner.NewRepository(database)
	partnerSvc := partner.NewService(partnerRepo)

	packageRepo := foodpackage.NewRepository(database)
	packageSvc := foodpackage.NewService(packageRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(
		userRepo,
		user.NewRedisCodeStore(rdb),
		user.NewRedisRefreshStore(rdb),
		user.LogSender{},
	)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, packageRepo, hub)

	favoriteRepo := favorite.NewRepository(database)
	favoriteSvc := favorite.NewService(favoriteRepo, partnerRepo)

	sessions := discovery.NewManager(sessionTTL)
	defer sessions.Close()

	srv := server.SetupRoutes(server.Dependencies{
		Users:     userSvc,
		Partners:  partnerSvc,
		Packages:  packageSvc,
		Orders:    orderSvc,
		Favorites: favoriteSvc,
		Sessions:  sessions,
		Hub:       hub,
	})

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.Run(cfg.AppPort); err != nil {
			log.Warn("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
