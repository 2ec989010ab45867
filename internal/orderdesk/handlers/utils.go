package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/pkg/logging"
)

type OrdersService interface {
	GetAllOrders(ctx context.Context) ([]orderprotocol.Order, error)
}

func tryWriteResponseJSON(w http.ResponseWriter, status int, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err //nolint:wrapcheck // unnecessary
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(res)
	return err //nolint:wrapcheck // unnecessary
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, responseItem any, logger *logging.ZapLogger) {
	if err := tryWriteResponseJSON(w, status, responseItem); err != nil {
		logger.ErrorCtx(ctx, "Error writing response", zap.Error(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string, logger *logging.ZapLogger) {
	writeJSON(ctx, w, status, orderprotocol.ErrorResponse{
		Success: false,
		Message: message,
	}, logger)
}
