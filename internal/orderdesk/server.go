package orderdesk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"go-orderdesk/internal/orderdesk/handlers"
	"go-orderdesk/internal/orderdesk/middleware"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/pkg/logging"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

// OrdersService is everything the HTTP surface needs from the order store.
type OrdersService interface {
	handlers.OrdersService
	handlers.OrderGettingService
	handlers.OrderDeletingService
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func New(
	cfg Config,
	ordersService OrdersService,
	builder *orderlist.Builder,
	exporter handlers.OrdersExporter,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           createMux(ordersService, builder, exporter, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	ordersService OrdersService,
	builder *orderlist.Builder,
	exporter handlers.OrdersExporter,
	logger *logging.ZapLogger,
) *chi.Mux {
	ordersGettingHandler := handlers.NewOrdersGettingHandler(ordersService, logger)
	orderGettingHandler := handlers.NewOrderGettingHandler(ordersService, logger)
	orderDeletingHandler := handlers.NewOrderDeletingHandler(ordersService, logger)
	tableGettingHandler := handlers.NewTableGettingHandler(ordersService, builder, logger)
	exportHandler := handlers.NewExportHandler(ordersService, exporter, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.NewLoggerContext().CreateHandler,
		middleware.NewPanicRecover(logger).CreateHandler,
	)

	router.Route("/api/admin", func(router chi.Router) {
		router.Get("/orders", ordersGettingHandler.ServeHTTP)
		router.Get("/order/{id}", orderGettingHandler.ServeHTTP)
		router.Delete("/order/{id}", orderDeletingHandler.ServeHTTP)
	})
	router.Route("/admin/orders", func(router chi.Router) {
		router.Get("/", tableGettingHandler.ServeHTTP)
		router.Get("/export", exportHandler.ServeHTTP)
	})

	return router
}
