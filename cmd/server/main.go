package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chotta-app/chotta/internal/api"
	"github.com/chotta-app/chotta/internal/config"
	"github.com/chotta-app/chotta/internal/invite"
	"github.com/chotta-app/chotta/internal/rates"
	"github.com/chotta-app/chotta/internal/service"
	"github.com/chotta-app/chotta/internal/storage/sqlite"
	"github.com/chotta-app/chotta/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Refresh currency rates in the background
	refresher := rates.NewRefresher(rates.NewClient(cfg.RatesBaseURL), store, cfg.RatesCurrencies, cfg.RatesRefresh)
	go refresher.Run(ctx)

	a := api.New(
		service.NewRoomService(store, cfg.RoomTTL),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		invite.NewManager(cfg.JWTSecret),
	)

	// h2c enables HTTP/2 without TLS for clients that speak it
	server := &http.Server{
		Addr:    cfg.Bind,
		Handler: h2c.NewHandler(a.Handler(), &http2.Server{}),
	}

	go func() {
		figure.NewColorFigure("chotta", "puffy", "green", true).Print()
		slog.Info("Server starting", "address", cfg.Bind)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
