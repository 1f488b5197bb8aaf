package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"openpims-golang/gateway/internal/config"
	"openpims-golang/gateway/internal/gateway"
	"openpims-golang/gateway/internal/logger"
	"openpims-golang/gateway/internal/session"
)

func main() {
	cfg := config.Get()
	logger.Init()

	store := session.NewStore(cfg.DataDir)
	ctrl := session.NewController(store)
	ctrl.Restore()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Banner(addr, cfg.ServerURL)

	srv := &http.Server{
		Addr:              addr,
		Handler:           gateway.NewRouter(ctrl),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	logger.Info("Server stopped")
}
