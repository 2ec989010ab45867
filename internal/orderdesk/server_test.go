package orderdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/handlers"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/service"
	"go-orderdesk/pkg/logging"
)

type fakeOrdersService struct {
	mux    sync.Mutex
	orders []orderprotocol.Order
	err    error
}

func (s *fakeOrdersService) GetAllOrders(context.Context) ([]orderprotocol.Order, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.orders), nil
}

func (s *fakeOrdersService) GetOrder(_ context.Context, orderID string) (orderprotocol.Order, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return orderprotocol.Order{}, service.ErrOrderNotFound
}

func (s *fakeOrdersService) DeleteOrder(_ context.Context, orderID string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.err != nil {
		return s.err
	}
	before := len(s.orders)
	s.orders = slices.DeleteFunc(s.orders, func(o orderprotocol.Order) bool {
		return o.ID == orderID
	})
	if len(s.orders) == before {
		return service.ErrOrderNotFound
	}
	return nil
}

type failingExporter struct{}

func (failingExporter) Export(io.Writer, []orderprotocol.Order) error {
	return errors.New("canvas broke")
}

func newTestServer(t *testing.T, svc *fakeOrdersService, exporter handlers.OrdersExporter) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(createMux(
		svc,
		orderlist.NewBuilder(orderlist.Config{}),
		exporter,
		logging.NewNop(),
	))
	t.Cleanup(server.Close)
	return server
}

func sampleOrders() []orderprotocol.Order {
	return []orderprotocol.Order{
		{
			ID:         "A1",
			Items:      []orderprotocol.Item{{Name: "Pen"}, {Name: "Ink"}},
			TotalPrice: decimal.NewFromInt(150),
			Status:     "Processing",
		},
		{
			ID:         "B2",
			TotalPrice: decimal.RequireFromString("99.5"),
			Status:     "Delivered",
		},
	}
}

func do(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestGetAllOrders(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{orders: sampleOrders()}, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodGet, server.URL+"/api/admin/orders")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	res := orderprotocol.OrdersResponse{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Success)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, "A1", res.Orders[0].ID)
}

func TestGetAllOrdersFailure(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{err: errors.New("db down")}, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodGet, server.URL+"/api/admin/orders")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	res := orderprotocol.ErrorResponse{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestGetOrder(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{orders: sampleOrders()}, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodGet, server.URL+"/api/admin/order/B2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := orderprotocol.OrderResponse{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "B2", res.Order.ID)
	assert.Equal(t, "99.5", res.Order.TotalPrice.String())

	resp, _ = do(t, http.MethodGet, server.URL+"/api/admin/order/Z9")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteOrder(t *testing.T) {
	svc := &fakeOrdersService{orders: sampleOrders()}
	server := newTestServer(t, svc, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodDelete, server.URL+"/api/admin/order/A1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, string(body))

	resp, body = do(t, http.MethodDelete, server.URL+"/api/admin/order/A1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"message":"order not found with this id"}`, string(body))

	orders, err := svc.GetAllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestGetTable(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{orders: sampleOrders()}, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodGet, server.URL+"/admin/orders")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	table := orderlist.TableViewModel{}
	require.NoError(t, json.Unmarshal(body, &table))
	assert.Equal(t, orderlist.Columns(), table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Pen, Ink", table.Rows[0].ProductNames)
	assert.Equal(t, "₹150", table.Rows[0].FormattedAmount)
	assert.Equal(t, orderlist.StatusRed, table.Rows[0].Status.Color)
	assert.Equal(t, "/admin/order/A1", table.Rows[0].Actions.Edit.Path)
	assert.False(t, table.Rows[0].Actions.Delete.Disabled)
	assert.Equal(t, orderlist.StatusGreen, table.Rows[1].Status.Color)
}

func TestExport(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{orders: sampleOrders()}, export.NewFormatter(export.Config{}))

	resp, body := do(t, http.MethodGet, server.URL+"/admin/orders/export")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="order-list.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestExportFailure(t *testing.T) {
	server := newTestServer(t, &fakeOrdersService{orders: sampleOrders()}, failingExporter{})

	resp, body := do(t, http.MethodGet, server.URL+"/admin/orders/export")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
	assert.JSONEq(t, `{"success":false,"message":"failed to export orders"}`, string(body))
}
