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

	"golang.org/x/sync/errgroup"

	"github.com/KostyaCholak/towdef/config"
	"github.com/KostyaCholak/towdef/network"
	"github.com/KostyaCholak/towdef/room"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	config.Load()
	addr := config.GetEnvDefault("ADDR", "localhost")
	port := config.GetEnvDefault("PORT", "3001")

	r := room.New()

	mux := http.NewServeMux()
	mux.Handle("/ws", network.NewHandler(r))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: addr + ":" + port, Handler: mux}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("listening", "addr", srv.Addr, "ws", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		r.Run()
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		r.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "err", err)
			return srv.Close()
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
	slog.Info("server shutdown complete")
}
