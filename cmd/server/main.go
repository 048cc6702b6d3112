package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkotchkov/storefront/internal/config"
	"github.com/mkotchkov/storefront/internal/db"
	"github.com/mkotchkov/storefront/internal/events"
	"github.com/mkotchkov/storefront/internal/httpserver"
	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/repo"
	"github.com/mkotchkov/storefront/internal/search"
	"github.com/mkotchkov/storefront/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Info("kafka disabled: no brokers configured")
	}

	searchClient, err := search.New(search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		logger.Error("elasticsearch init failed", "error", err)
		os.Exit(1)
	}
	if !searchClient.Enabled() {
		logger.Info("search disabled: no ES_URL configured")
	}

	r := repo.New(gdb)

	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:        authSvc,
			Producer:   producer,
			Production: cfg.Production(),
		},
		Products: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: r},
			Search:   searchClient,
			Producer: producer,
		},
		Cart: &httpserver.CartHTTP{
			Cart:     &service.CartService{Repo: r},
			Checkout: &service.CheckoutService{Repo: r},
			Producer: producer,
		},
		AuthMW: &httpserver.AuthMiddleware{
			Repo:      r,
			JWTSecret: cfg.JWTSecret,
		},
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
