package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/pkg/logging"
)

type OrdersGettingHandler struct {
	service OrdersService
	logger  *logging.ZapLogger
}

func NewOrdersGettingHandler(service OrdersService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to get orders", h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, orderprotocol.OrdersResponse{
		Success: true,
		Orders:  orders,
	}, h.logger)
}
