package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/tilegen/config"
	"github.com/automoto/tilegen/server"
)

func runServe(args []string) error {
	cfg := config.Server
	fset := flag.NewFlagSet("serve", flag.ExitOnError)
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fset.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "how long generated maps stay available")
	fset.IntVar(&cfg.MaxCells, "max-cells", cfg.MaxCells, "largest width*height accepted")
	_ = fset.Parse(args)

	store := server.NewStore(cfg.TTL, cfg.CleanupInterval)
	defer store.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewHandler(store, cfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] starting on %s (TTL=%s)", cfg.Addr, cfg.TTL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
