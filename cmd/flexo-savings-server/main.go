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

	"github.com/iwvelando/flexo-savings/internal/logging"
	"github.com/iwvelando/flexo-savings/internal/server"
	"github.com/iwvelando/flexo-savings/internal/session"
	"github.com/iwvelando/flexo-savings/internal/storage"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	maxRequestSize := flag.String("max-request-size", "", "request body limit override (e.g. 256K, 1M)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load(constants.DefaultEnvFile)

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}
	if *maxRequestSize != "" {
		size, err := server.ParseSize(*maxRequestSize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max request size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetRequestSizeBytes(size)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server stopped with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg *server.Config) error {
	store, closeStore, err := openStore(logger, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, session.NewService(logger, store), cfg.RequestSizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("op", "main.run"),
			zap.String("address", cfg.Address),
			zap.String("storage", cfg.Storage.Driver),
			zap.Int64("maxRequestSize", cfg.RequestSizeBytes()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down",
			zap.String("op", "main.run"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(logger *zap.Logger, storageConfig server.StorageConfig) (session.Store, func(), error) {
	switch storageConfig.Driver {
	case constants.StorageDriverSQLite:
		store, err := storage.NewSQLiteStore(logger, storageConfig.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close session database",
					zap.String("op", "main.openStore"),
					zap.Error(err),
				)
			}
		}, nil
	default:
		return session.NewMemoryStore(), func() {}, nil
	}
}
