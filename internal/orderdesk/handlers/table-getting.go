package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/pkg/logging"
)

// TableGettingHandler serves the order table view model. Delete affordances
// are never disabled here since the guard lives with the operator.
type TableGettingHandler struct {
	service OrdersService
	builder *orderlist.Builder
	logger  *logging.ZapLogger
}

func NewTableGettingHandler(
	service OrdersService,
	builder *orderlist.Builder,
	logger *logging.ZapLogger,
) *TableGettingHandler {
	return &TableGettingHandler{
		service: service,
		builder: builder,
		logger:  logger,
	}
}

func (h *TableGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to get orders", h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, h.builder.Build(orders, nil), h.logger)
}
