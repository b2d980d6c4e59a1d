package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chirp-lab/api"
	"chirp-lab/directory"
	"chirp-lab/internal"
	"chirp-lab/projection"
	"chirp-lab/ratelimit"
	"chirp-lab/repositories"
	"chirp-lab/services"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so that deferred cleanup always executes
// before the process exits.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := internal.ValidateStorage(config); err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage wiring. Both the post store and the rate-limit attempt
	// store come from the same driver.
	var posts repositories.IPostRepository
	var attempts ratelimit.IAttemptStore

	switch config.StorageDriver {
	case internal.DriverBadger:
		options := badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING)
		db, err := badger.Open(options)
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}()
		posts = repositories.NewBadgerPostRepository(db, logger)
		attempts = ratelimit.NewBadgerAttemptStore(db)

	case internal.DriverPostgres:
		pool, err := repositories.NewPgxPool(ctx, config.PostgresDSN)
		if err != nil {
			return exitRuntime, err
		}
		defer func() {
			logger.Info("Closing Postgres pool...")
			pool.Close()
		}()
		if err := repositories.EnsurePostSchema(ctx, pool); err != nil {
			return exitRuntime, fmt.Errorf("ensure posts schema: %w", err)
		}
		if err := ratelimit.EnsureAttemptSchema(ctx, pool); err != nil {
			return exitRuntime, fmt.Errorf("ensure attempts schema: %w", err)
		}
		posts = repositories.NewPostgresPostRepository(pool)
		attempts = ratelimit.NewPostgresAttemptStore(pool)
	}

	// 3. Core components
	limiter := ratelimit.NewLimiter(attempts, config.RateLimitWindow, config.RateLimitMax, logger)
	dir := directory.NewClient(config.DirectoryBaseURL, config.DirectoryToken, config.DirectoryTimeout, logger)
	assembler := projection.NewAssembler(dir, logger)
	service := services.NewPostService(posts, assembler, limiter, services.Config{
		RateLimitScope: config.RateLimitScope,
		FeedPageSize:   config.FeedPageSize,
		CallTimeout:    config.StoreTimeout,
	}, logger)

	// 4. HTTP surface
	app := fiber.New()
	api.Register(app, service, []byte(config.JWTSecret), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf("%s:%d", config.Host, config.Port))
	}()
	logger.Info("listening", "host", config.Host, "port", config.Port,
		"driver", config.StorageDriver, "rate_limit_scope", config.RateLimitScope)

	// 5. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return exitRuntime, err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return exitRuntime, err
		}
	}
	return exitOK, nil
}
