package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/chicfit/storefront/internal/cache"
	"github.com/chicfit/storefront/internal/config"
	"github.com/chicfit/storefront/internal/db"
	"github.com/chicfit/storefront/internal/es"
	"github.com/chicfit/storefront/internal/events"
	"github.com/chicfit/storefront/internal/handlers"
	"github.com/chicfit/storefront/internal/logging"
	loggingmw "github.com/chicfit/storefront/internal/middleware/logging"
	"github.com/chicfit/storefront/internal/notify"
	"github.com/chicfit/storefront/internal/service"
	"github.com/chicfit/storefront/internal/service/token"
	"github.com/chicfit/storefront/internal/storage"
	httpserver "github.com/chicfit/storefront/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(cfg.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}
	var publisher events.Publisher
	if producer != nil {
		publisher = producer
	}

	statusCache := cache.New(cfg.REDIS_ADDR)
	var orderCache service.StatusCache
	if statusCache != nil {
		orderCache = statusCache
	}

	var mailer notify.Mailer
	if cfg.SENDGRID_API_KEY != "" {
		mailer = notify.NewSendGrid(cfg.SENDGRID_API_KEY, cfg.EMAIL_FROM)
	}

	blobs, err := storage.NewDiskStore(cfg.UPLOAD_DIR, cfg.PUBLIC_URL)
	if err != nil {
		logger.Error("upload store init failed", "error", err)
		os.Exit(1)
	}

	var searchHandler *handlers.SearchHandler
	var esClient *elasticsearch.Client
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			esClient = client
			searchHandler = handlers.NewSearchHandler(client)
		}
	}

	tokens := &token.TokenService{
		DB:            database,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}

	checkout := &service.Checkout{DB: database, Mailer: mailer, Events: publisher, Cache: orderCache}
	orders := &service.Orders{DB: database, Mailer: mailer, Events: publisher, Cache: orderCache, PublicURL: cfg.PUBLIC_URL}
	returns := &service.Returns{DB: database, Mailer: mailer}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Tokens:            tokens,
		AuthHandler:       &handlers.AuthHandler{DB: database, Tokens: tokens, Events: publisher},
		ProductHandler:    &handlers.ProductHandler{DB: database, ES: esClient, Events: publisher},
		CheckoutHandler:   &handlers.CheckoutHandler{Checkout: checkout},
		OrderHandler:      &handlers.OrderHandler{Orders: orders},
		ReturnHandler:     &handlers.ReturnHandler{DB: database, Returns: returns},
		ReviewHandler:     &handlers.ReviewHandler{DB: database},
		ContactHandler:    &handlers.ContactHandler{DB: database},
		NewsletterHandler: &handlers.NewsletterHandler{DB: database},
		UploadHandler:     &handlers.UploadHandler{Store: blobs},
		UserHandler:       &handlers.UserHandler{DB: database},
		SearchHandler:     searchHandler,
		UploadDir:         cfg.UPLOAD_DIR,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.SERVER_PORT)
		logger.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close failed", "error", err)
		}
	}
	if err := statusCache.Close(); err != nil {
		logger.Error("redis close failed", "error", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("shutdown complete")
}
