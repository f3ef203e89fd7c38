package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/order_api/internal/config"
	"github.com/Skotchmaster/order_api/internal/db"
	"github.com/Skotchmaster/order_api/internal/events"
	"github.com/Skotchmaster/order_api/internal/httpserver"
	"github.com/Skotchmaster/order_api/internal/logging"
	"github.com/Skotchmaster/order_api/internal/repo"
	"github.com/Skotchmaster/order_api/internal/service"
	"github.com/Skotchmaster/order_api/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	publisher := events.NewProducer(cfg.KafkaBrokers)
	issuer := tokens.NewIssuer(cfg.JWTSecret)

	authSvc := &service.AuthService{Repo: repo.NewUserRepo(gdb), Tokens: issuer, Publisher: publisher}
	orderSvc := &service.OrderService{Repo: repo.NewOrderRepo(gdb, cfg.DBQueryTimeout), Publisher: publisher}

	e := echo.New()
	e.HideBanner = true
	httpserver.UseMiddleware(e, logger, cfg.ServiceName)

	httpserver.Register(e, &httpserver.Deps{
		ServiceName:  cfg.ServiceName,
		Production:   cfg.IsProduction(),
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
		OrderHandler: &httpserver.OrderHTTP{Svc: orderSvc},
		Tokens:       issuer,
		Ready:        func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_started", "addr", srv.Addr, "env", cfg.Env, "kafka_enabled", len(cfg.KafkaBrokers) > 0)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdown(logger, srv, publisher, gdb)
}

func shutdown(logger *slog.Logger, srv *http.Server, publisher events.Publisher, gdb *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	logger.Info("server_stopped")
}
