package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gobazaar/backend/internal/config"
	"github.com/gobazaar/backend/internal/events"
	"github.com/gobazaar/backend/internal/gateway"
	"github.com/gobazaar/backend/internal/httpserver"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/internal/search"
	"github.com/gobazaar/backend/internal/service"
	pkgdb "github.com/gobazaar/backend/pkg/db"
	"github.com/gobazaar/backend/pkg/logging"
	loggingmw "github.com/gobazaar/backend/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.GatewayKeySecret, "GATEWAY_KEY_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Rating{},
		&models.User{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("kafka disabled, events will not be published")
	}

	var indexer *search.Indexer
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer = &search.Indexer{ES: es, Index: cfg.ESIndex}
	} else {
		logger.Warn("elasticsearch disabled, product search unavailable")
		indexer = &search.Indexer{}
	}

	gw := gateway.NewHTTPClient(cfg.GatewayURL, cfg.GatewayKeyID, cfg.GatewayKeySecret)

	r := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	checkoutSvc := &service.CheckoutService{Repo: r, Gateway: gw, Producer: producer, Currency: cfg.GatewayCurrency}
	paymentSvc := &service.PaymentService{Repo: r, Secret: []byte(cfg.GatewayKeySecret), Producer: producer}
	orderSvc := &service.OrderService{Repo: r}
	adminSvc := &service.AdminService{Repo: r, Producer: producer, Indexer: indexer}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, ES: indexer.ES, ESIndex: cfg.ESIndex},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		OrderHandler: &httpserver.OrderHTTP{
			Checkout:   checkoutSvc,
			Payments:   paymentSvc,
			Orders:     orderSvc,
			SuccessURL: cfg.PaymentSuccessURL,
			FailureURL: cfg.PaymentFailureURL,
		},
		AdminHandler: &httpserver.AdminHTTP{Svc: adminSvc},
		JWTSecret:    cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
