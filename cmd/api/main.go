package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-backend/internal/api"
	"auction-backend/internal/api/handlers"
	"auction-backend/internal/auth"
	"auction-backend/internal/config"
	"auction-backend/internal/db"
	"auction-backend/internal/hub"
	"auction-backend/internal/logger"
	"auction-backend/internal/metrics"
	"auction-backend/internal/middleware"
	"auction-backend/internal/repository/postgres"
	"auction-backend/internal/services"
	"auction-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	userSvc := services.NewUserService(repos.Users, tm)
	productSvc := services.NewProductService(repos.Products)
	auctionSvc := services.NewAuctionService(repos.Auctions, repos.Products, repos.Users, repos.EventLogs, wp)
	chatSvc := services.NewChatService(repos.ChatMessages, repos.Auctions, repos.Users)

	h := hub.New(auctionSvc, chatSvc, log)
	defer h.Close()

	metrics.Init()
	router := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Auth:     handlers.NewAuthHandler(userSvc),
		Users:    handlers.NewUsersHandler(userSvc),
		Products: handlers.NewProductsHandler(productSvc),
		Auctions: handlers.NewAuctionsHandler(auctionSvc, chatSvc),
		WS:       handlers.NewWSHandler(h, tm, repos.Users, repos.Auctions, log),
		AuthMW:   middleware.NewAuthMiddleware(tm),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
