package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ardou0/Teeko-IA41/engine"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := loadServerConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config")
	}
	logger := newLogger(cfg.LogLevel)

	engineConfig, err := loadEngineConfig(cfg.ConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ConfigPath).Msg("engine config")
	}
	engine.SetConfig(engineConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("backend stopped")
		os.Exit(1)
	}
	logger.Info().Msg("backend stopped")
}

func run(ctx context.Context, cfg ServerConfig, logger zerolog.Logger) error {
	group, groupCtx := errgroup.WithContext(ctx)
	app := newServer(NewGameController(DefaultGameSettings(), logger), logger, groupCtx.Done())

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(app),
	}

	group.Go(func() error {
		app.hub.Run(groupCtx.Done())
		return nil
	})
	group.Go(func() error {
		app.analysis.Run(groupCtx.Done())
		return nil
	})
	group.Go(func() error {
		app.runTicker(groupCtx, cfg.Tick)
		return nil
	})
	group.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Msg("backend listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("graceful shutdown failed")
			return httpServer.Close()
		}
		return nil
	})
	return group.Wait()
}
