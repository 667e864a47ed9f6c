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
	"golang.org/x/sync/errgroup"

	"github.com/npc2425/wiprotrainjul2025/internal/auth"
	"github.com/npc2425/wiprotrainjul2025/internal/config"
	"github.com/npc2425/wiprotrainjul2025/internal/httpx"
	"github.com/npc2425/wiprotrainjul2025/internal/inventory"
	kafkax "github.com/npc2425/wiprotrainjul2025/internal/kafka"
	"github.com/npc2425/wiprotrainjul2025/internal/orders"
	"github.com/npc2425/wiprotrainjul2025/internal/postgres"
	"github.com/npc2425/wiprotrainjul2025/internal/redisx"
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

	ledger := &inventory.Ledger{DB: db}
	rec := &inventory.Reconciler{Ledger: ledger, Redis: rdb, Log: log}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, orders.TopicOrderEvents, cfg.ConsumerWorkers)

	tokens := auth.NewManager(cfg.JWTSecret, 10*time.Hour)
	router := httpx.NewRouter()
	router.Use(tokens.Middleware)
	(&httpx.ProductsHandler{Repo: &inventory.Repo{DB: db}, Ledger: ledger, Redis: rdb}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("consumer started", "group", cfg.ConsumerGroup, "topic", orders.TopicOrderEvents, "workers", cfg.ConsumerWorkers)
		return cons.Start(gctx, rec.HandleEvent)
	})
	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-gctx.Done():
		}
		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}
