package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"xsd-binder/internal/server"
)

func runServe(ctx context.Context, inv *invocation) error {
	log := newLogger(inv)

	model, err := build(ctx, inv, log)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", inv.cfg.Listen)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Handler:      server.NewServer(model, log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving schema model", "addr", ln.Addr().String(), "namespaces", len(model.Namespaces))

	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
