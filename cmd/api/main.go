package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
	"github.com/npc2425/wiprotrainjul2025/internal/cart"
	"github.com/npc2425/wiprotrainjul2025/internal/config"
	"github.com/npc2425/wiprotrainjul2025/internal/httpx"
	kafkax "github.com/npc2425/wiprotrainjul2025/internal/kafka"
	"github.com/npc2425/wiprotrainjul2025/internal/orders"
	"github.com/npc2425/wiprotrainjul2025/internal/postgres"
	"github.com/npc2425/wiprotrainjul2025/internal/redisx"
	"github.com/npc2425/wiprotrainjul2025/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", cfg.ServiceName)
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	tokens := auth.NewManager(cfg.JWTSecret, 10*time.Hour)

	orderSvc := &orders.Service{
		Store: &orders.Repo{DB: db},
		Sink:  &orders.KafkaSink{Producer: prod},
		Log:   log,
	}
	userSvc := &users.Service{Store: &users.Repo{DB: db}}

	router := httpx.NewRouter()
	router.Use(tokens.Middleware)
	(&httpx.OrdersHandler{Svc: orderSvc, Redis: rdb}).Register(router)
	(&httpx.CartHandler{Repo: &cart.Repo{DB: db}}).Register(router)
	(&httpx.UsersHandler{Svc: userSvc, Tokens: tokens}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	prod.Close() // flush buffered events, then stop the writer
	prod.WaitClosed()
}
