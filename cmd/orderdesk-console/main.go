package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"go-orderdesk/cmd/orderdesk-console/config"
	"go-orderdesk/internal/orderdesk/console"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/notify"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/orderstore"
	"go-orderdesk/internal/orderdesk/synccontroller"
	"go-orderdesk/internal/orderdesk/syncstate"
	"go-orderdesk/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// the terminal belongs to the prompts, logs go to stderr only
	logger, err := logging.NewZapLogger(
		zapcore.InfoLevel,
		logging.WithOutputPaths("stderr"),
		logging.WithConsoleEncoding(),
	)
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
	)
	defer cancelCtx()

	out := console.NewSyncWriter(os.Stdout)
	state := syncstate.New()
	store := orderstore.New(cfg.Store, state, logger)
	controller := synccontroller.New(
		store,
		state,
		notify.NewLogNotifier(out, logger),
		export.NewFormatter(cfg.Export),
		logger,
	)
	app := console.New(
		cfg.Console,
		controller,
		state,
		orderlist.NewBuilder(cfg.Table),
		console.NewSurveyDriver(),
		out,
		logger,
	)

	if err := run(rootCtx, state, controller, app); err != nil {
		logger.ErrorCtx(rootCtx, "Console stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(rootCtx context.Context, state *syncstate.Container, controller *synccontroller.Controller, app *console.Console) error {
	g, ctx := errgroup.WithContext(rootCtx)
	ctx, stop := context.WithCancel(ctx)

	g.Go(func() error {
		err := state.Run(ctx, app.Handler(controller.HandleStateChange))
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("state loop failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer stop()
		if err := app.Run(ctx); err != nil {
			return fmt.Errorf("console failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	controller.Wait()
	if err != nil {
		return fmt.Errorf("goroutine error occurred: %w", err)
	}
	return nil
}
