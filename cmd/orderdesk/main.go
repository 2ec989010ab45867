package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"go-orderdesk/cmd/orderdesk/config"
	"go-orderdesk/internal/orderdesk"
	"go-orderdesk/internal/orderdesk/data/database"
	"go-orderdesk/internal/orderdesk/data/dbrepository"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/service"
	"go-orderdesk/pkg/logging"
	"go-orderdesk/pkg/pgxstorage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(zapcore.DebugLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB, logger)
	storage, err := pgxstorage.New(rootCtx, dbFactory)
	if err != nil {
		logger.ErrorCtx(rootCtx, "Failed to open storage", zap.Error(err))
		return
	}
	defer storage.Close()

	repository := dbrepository.New(storage, logger)
	transactionManager := pgxstorage.NewTransactionsManager(storage)
	ordersService := service.NewOrders(transactionManager, repository)

	if cfg.SeedFile != "" {
		if err := seed(rootCtx, cfg.SeedFile, ordersService); err != nil {
			if !errors.Is(err, service.ErrOrderExists) {
				logger.ErrorCtx(rootCtx, "Failed to seed orders", zap.Error(err))
				return
			}
			logger.WarnCtx(rootCtx, "Orders already seeded", zap.Error(err))
		} else {
			logger.InfoCtx(rootCtx, "Orders seeded", zap.String("file", cfg.SeedFile))
		}
	}

	server := orderdesk.New(
		cfg.Server,
		ordersService,
		orderlist.NewBuilder(cfg.Table),
		export.NewFormatter(cfg.Export),
		logger,
	)

	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(rootCtx context.Context, cfg *config.Config, server *orderdesk.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		logger.InfoCtx(ctx, "Starting server", zap.String("address", cfg.Server.ServerAddress))
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occurred: %w", err)
	}

	return nil
}
