package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria/cmd"
	"pizzeria/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, using the process environment: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := logging.New(configs.Logging())
	if err != nil {
		log.Fatalf("Invalid logging configuration: %v", err)
	}
	defer closeLog()

	if err = run(configs, logger); err != nil {
		logger.Error("Pizzeria stopped with an error", "error", err)
		os.Exit(1)
	}
}

func run(configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
