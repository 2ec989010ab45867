package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/pkg/logging"
)

type OrdersExporter interface {
	Export(w io.Writer, orders []orderprotocol.Order) error
}

type ExportHandler struct {
	service  OrdersService
	exporter OrdersExporter
	logger   *logging.ZapLogger
}

func NewExportHandler(service OrdersService, exporter OrdersExporter, logger *logging.ZapLogger) *ExportHandler {
	return &ExportHandler{
		service:  service,
		exporter: exporter,
		logger:   logger,
	}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to get orders", h.logger)
		return
	}
	buf := &bytes.Buffer{}
	if err := h.exporter.Export(buf, orders); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error exporting orders", zap.Error(err))
		writeError(r.Context(), w, http.StatusInternalServerError, "failed to export orders", h.logger)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorCtx(r.Context(), "Error writing export", zap.Error(err))
	}
}
