package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"supermarket/internal/config"
	"supermarket/internal/database"
	"supermarket/internal/logger"
	"supermarket/internal/server"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// awaitShutdown blocks until ctx is cancelled by a signal, then drains
// in-flight requests and releases the database pool.
func awaitShutdown(ctx context.Context, stop context.CancelFunc, srv *server.Server, log *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		// a second signal kills the process
		stop()
		log.Info("Shutdown requested, draining requests", zap.Duration("timeout", shutdownTimeout))

		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			log.Error("Requests still in flight at deadline", zap.Error(err))
		}
		if err := srv.Close(); err != nil {
			log.Error("Failed to release database pool", zap.Error(err))
		}
	}()
	return done
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Log.Output)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting supermarket inventory API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("config", cfg.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	dbService, err := database.New(startCtx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database health check", zap.Any("health", dbService.Health(startCtx)))

	if err := database.RunMigrations(dbService.DB(), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	srv := server.NewServer(cfg, log, dbService)
	done := awaitShutdown(ctx, stop, srv, log)

	log.Info("Server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Server exited")
}
