// Package orderstore is the HTTP client of the admin order API. It never
// returns outcomes to its caller: every result is written into the shared
// order-list state.
package orderstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/pkg/logging"
)

const (
	ordersPath = "/api/admin/orders"
	orderPath  = "/api/admin/order/{id}"
)

var (
	ErrUnsuccessfulResponse = errors.New("unsuccessful response")
)

// State receives the outcomes of remote operations.
type State interface {
	StartLoading()
	SetOrders(orders []orderprotocol.Order)
	SetError(message string)
	MarkDeleted()
}

type Config struct {
	ServerAddress string
}

type OrderStore struct {
	client *resty.Client
	state  State
	logger *logging.ZapLogger
}

func New(cfg Config, state State, logger *logging.ZapLogger) *OrderStore {
	return &OrderStore{
		client: resty.New().SetBaseURL(cfg.ServerAddress),
		state:  state,
		logger: logger,
	}
}

func (s *OrderStore) FetchAllOrders(ctx context.Context) {
	s.state.StartLoading()
	orders, err := s.getAllOrders(ctx)
	if err != nil {
		s.logger.ErrorCtx(ctx, "fetching orders failed", zap.Error(err))
		s.state.SetError(errorMessage(err))
		return
	}
	s.logger.DebugCtx(ctx, "orders fetched", zap.Int("count", len(orders)))
	s.state.SetOrders(orders)
}

func (s *OrderStore) DeleteOrder(ctx context.Context, orderID string) {
	err := s.deleteOrder(ctx, orderID)
	if err != nil {
		s.logger.ErrorCtx(ctx, "deleting order failed", zap.String("orderID", orderID), zap.Error(err))
		s.state.SetError(errorMessage(err))
		return
	}
	s.logger.InfoCtx(ctx, "order deleted", zap.String("orderID", orderID))
	s.state.MarkDeleted()
}

func (s *OrderStore) getAllOrders(ctx context.Context) ([]orderprotocol.Order, error) {
	resp, err := s.client.
		R().
		SetContext(ctx).
		Get(ordersPath)
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp)
	}
	res := orderprotocol.OrdersResponse{}
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return nil, fmt.Errorf("error unmarshalling orders response: %w", err)
	}
	if !res.Success {
		return nil, ErrUnsuccessfulResponse
	}
	return res.Orders, nil
}

func (s *OrderStore) deleteOrder(ctx context.Context, orderID string) error {
	resp, err := s.client.
		R().
		SetContext(ctx).
		SetPathParam("id", orderID).
		Delete(orderPath)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return responseError(resp)
	}
	res := orderprotocol.StatusResponse{}
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return fmt.Errorf("error unmarshalling delete response: %w", err)
	}
	if !res.Success {
		return ErrUnsuccessfulResponse
	}
	return nil
}

// RemoteError is a failure reported by the server.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func responseError(resp *resty.Response) error {
	res := orderprotocol.ErrorResponse{}
	if err := json.Unmarshal(resp.Body(), &res); err != nil || res.Message == "" {
		return &RemoteError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("unexpected status code %v", resp.StatusCode()),
		}
	}
	return &RemoteError{
		StatusCode: resp.StatusCode(),
		Message:    res.Message,
	}
}

func errorMessage(err error) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}
	return err.Error()
}
