package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/calamity-games/party-backend/internal/config"
	"github.com/calamity-games/party-backend/internal/game"
	"github.com/calamity-games/party-backend/internal/logging"
	"github.com/calamity-games/party-backend/internal/server"
	"github.com/calamity-games/party-backend/internal/ws"
)

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		logging.DefaultLogger().Fatalw("config", "err", err)
	}

	log := logging.NewLogger(cfg.Debug)
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, log)

	hub := ws.NewHub(log)
	orch := game.NewOrchestrator(cfg, log, hub)
	srv := server.New(cfg, log, hub, orch).HTTPServer()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return orch.Run(ctx)
	})
	group.Go(func() error {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("exited", "err", err)
	}
	log.Info("shutdown complete")
}
