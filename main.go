package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"weatherchat.app/app"
)

func main() {
	// Pull in .env overrides before configuration is read
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}

	configDisplayer := app.NewConfigDisplayer()

	// Uncomment to display all environment variables during startup
	// configDisplayer.PrintAllEnvVars()

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Application startup failed", "error", err)
		os.Exit(1)
	}

	configDisplayer.PrintConfig(application.Config())

	setupGracefulShutdown(application)

	slog.Info("Starting Weather Chat...")
	if err := application.Start(); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *app.Application) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signals
		slog.Info("Shutting down on signal", "signal", sig.String())
		if err := app.Shutdown(); err != nil {
			slog.Error("Shutdown error", "error", err)
		}
		os.Exit(0)
	}()
}
