package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetplaner/internal/config"
	"budgetplaner/internal/database"
	"budgetplaner/internal/logger"
	"budgetplaner/internal/server"
	"budgetplaner/internal/validator"
)

// @title           Budget Planer API
// @version         1.0
// @description     Personal budget planning API: budgets, categories, monthly entries, deductions, templates and exports.

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Required only when the server runs with API_KEY set.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(args []string) error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.StringVar(&appConfig.Host, "host", appConfig.Host, "address to listen on")
	fs.StringVar(&appConfig.Port, "port", appConfig.Port, "port to listen on")
	fs.StringVar(&appConfig.DatabasePath, "database-path", appConfig.DatabasePath, "SQLite database file")
	migrateOnly := fs.Bool("migrate", false, "apply migrations and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if *migrateOnly {
		return nil
	}

	validator.Register()
	router := server.NewRouter(dbManager.DB(), appConfig)

	srv := &http.Server{
		Addr:              appConfig.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Budget Planer server on %s", appConfig.Addr())
		log.Infof("Swagger documentation available at http://%s/swagger/index.html", appConfig.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
