package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/service"
	"go-orderdesk/pkg/logging"
)

type OrderGettingService interface {
	GetOrder(ctx context.Context, orderID string) (orderprotocol.Order, error)
}

type OrderGettingHandler struct {
	service OrderGettingService
	logger  *logging.ZapLogger
}

func NewOrderGettingHandler(service OrderGettingService, logger *logging.ZapLogger) *OrderGettingHandler {
	return &OrderGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			h.logger.DebugCtx(r.Context(), "Order not found", zap.String("orderID", orderID))
			writeError(r.Context(), w, http.StatusNotFound, service.ErrOrderNotFound.Error(), h.logger)
		default:
			h.logger.ErrorCtx(r.Context(), "Error getting order", zap.Error(err))
			writeError(r.Context(), w, http.StatusInternalServerError, "failed to get order", h.logger)
		}
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, orderprotocol.OrderResponse{
		Success: true,
		Order:   order,
	}, h.logger)
}
