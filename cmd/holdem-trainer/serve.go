package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-trainer/internal/api"
)

// ServeCmd runs the JSON API.
type ServeCmd struct {
	Addr            string        `default:":8080" env:"HOLDEM_TRAINER_ADDR" help:"Server address"`
	ShutdownTimeout time.Duration `default:"5s" help:"How long to wait for requests to drain on shutdown"`
}

func (c *ServeCmd) Run(env *Env) error {
	logger := env.Logger("serve")
	srv := api.NewServer(
		api.WithLogger(logger),
		api.WithSimulator(env.Simulator(logger, 0), env.Config.Equity.Iterations),
	)

	httpServer := &http.Server{
		Addr:         c.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signalContext(logger)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", "addr", c.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
