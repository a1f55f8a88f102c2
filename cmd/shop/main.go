package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supermarket/internal/config"
	"supermarket/internal/console"
	"supermarket/internal/database"
	"supermarket/internal/logger"
	"supermarket/internal/repository"
	"supermarket/internal/service"

	"go.uber.org/zap"
)

// defaultLogFile keeps log lines out of the menus
const defaultLogFile = "shop.log"

func main() {
	cfg := config.Load()

	output := cfg.Log.Output
	if output == "" || output == "stdout" {
		output = defaultLogFile
	}
	log, err := logger.New(cfg.Server.Env, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open log file %s, logging to stdout: %v\n", output, err)
		log = logger.NewWithDefaults()
	}
	defer log.Sync()

	log.Info("Starting shop console", zap.String("env", cfg.Server.Env), zap.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Error("Database unavailable", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error connecting to PostgreSQL. Check the DB_* settings and that the database exists: %v\n", err)
		os.Exit(1)
	}
	defer dbService.Close()

	db := dbService.DB()
	if err := database.RunMigrations(db, log); err != nil {
		log.Error("Failed to run migrations", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to prepare the database schema: %v\n", err)
		dbService.Close()
		os.Exit(1)
	}

	products := repository.NewProductRepository(db)
	purchases := repository.NewPurchaseRepository(db)
	users := repository.NewUserRepository(db)
	txManager := repository.NewTransactionManager(db)

	window := time.Duration(cfg.Report.TrendingWindowDays) * 24 * time.Hour
	c := console.New(os.Stdin, os.Stdout, console.Services{
		Users:   service.NewUserService(users),
		Catalog: service.NewCatalogService(products, log),
		Cart:    service.NewCartService(products, txManager, log),
		Reports: service.NewReportService(purchases, window, cfg.Report.TrendingLimit),
	}, log)

	finished := make(chan struct{})
	watchInterrupt(ctx, stop, finished, func() {
		fmt.Fprintln(os.Stdout, "\nInterrupted. Exiting.")
		log.Info("Shop console interrupted")
		dbService.Close()
		_ = log.Sync()
		os.Exit(130)
	})

	err = c.Run(ctx)
	close(finished)
	if err != nil && err != context.Canceled {
		log.Error("Console stopped", zap.Error(err))
	}
	log.Info("Shop console exiting")
}
