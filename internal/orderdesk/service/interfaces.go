package service

import (
	"context"

	"go-orderdesk/internal/orderdesk/data"
)

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

type OrderRepository interface {
	GetAllOrders(ctx context.Context) ([]data.Order, error)
	GetOrder(ctx context.Context, orderID string) (data.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	InsertOrder(ctx context.Context, order *data.Order) error
}
