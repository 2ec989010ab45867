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

type OrderDeletingService interface {
	DeleteOrder(ctx context.Context, orderID string) error
}

type OrderDeletingHandler struct {
	service OrderDeletingService
	logger  *logging.ZapLogger
}

func NewOrderDeletingHandler(service OrderDeletingService, logger *logging.ZapLogger) *OrderDeletingHandler {
	return &OrderDeletingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderDeletingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	err := h.service.DeleteOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			h.logger.DebugCtx(r.Context(), "Order to delete not found", zap.String("orderID", orderID))
			writeError(r.Context(), w, http.StatusNotFound, service.ErrOrderNotFound.Error(), h.logger)
		default:
			h.logger.ErrorCtx(r.Context(), "Error deleting order", zap.Error(err))
			writeError(r.Context(), w, http.StatusInternalServerError, "failed to delete order", h.logger)
		}
		return
	}
	h.logger.InfoCtx(r.Context(), "Order deleted", zap.String("orderID", orderID))
	writeJSON(r.Context(), w, http.StatusOK, orderprotocol.StatusResponse{
		Success: true,
	}, h.logger)
}
