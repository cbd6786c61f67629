package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/biblio2ie/biblio/app/biblio"
	"github.com/biblio2ie/biblio/core/config"
	"github.com/biblio2ie/biblio/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg biblio.Config
	config.MustLoad(&cfg) // panic on error

	log := logger.New(cfg.Log, slog.String("app", cfg.AppName))

	app, err := biblio.NewApp(ctx, biblio.WithConfig(cfg), biblio.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("Application stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
