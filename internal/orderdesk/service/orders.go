package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/data"
)

type Orders struct {
	transactionManager TransactionManager
	orderRepository    OrderRepository
}

func NewOrders(transactionManager TransactionManager, orderRepository OrderRepository) *Orders {
	return &Orders{
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
	}
}

func (o *Orders) GetAllOrders(ctx context.Context) ([]orderprotocol.Order, error) {
	orders, err := o.orderRepository.GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting all orders: %w", err)
	}
	res := make([]orderprotocol.Order, len(orders))
	for i, order := range orders {
		res[i] = convert(order)
	}
	return res, nil
}

func (o *Orders) GetOrder(ctx context.Context, orderID string) (orderprotocol.Order, error) {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			return orderprotocol.Order{}, ErrOrderNotFound
		default:
			return orderprotocol.Order{}, fmt.Errorf("error getting order: %w", err)
		}
	}
	return convert(order), nil
}

// DeleteOrder removes the order together with its items.
func (o *Orders) DeleteOrder(ctx context.Context, orderID string) error {
	err := o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		return o.orderRepository.DeleteOrder(ctx, orderID)
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			return ErrOrderNotFound
		default:
			return fmt.Errorf("error deleting order: %w", err)
		}
	}
	return nil
}

// ImportOrders stores orders in a single transaction: either all of them are
// imported or none. Orders without a status start as Processing.
func (o *Orders) ImportOrders(ctx context.Context, orders []orderprotocol.Order) error {
	now := time.Now()
	err := o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		for _, order := range orders {
			row := toData(order, now)
			if err := o.orderRepository.InsertOrder(ctx, &row); err != nil {
				if errors.Is(err, data.ErrUniqueConstraintViolation) {
					return fmt.Errorf("%w: %s", ErrOrderExists, order.ID)
				}
				return fmt.Errorf("error inserting order %s: %w", order.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error importing orders: %w", err)
	}
	return nil
}

func toData(order orderprotocol.Order, createdAt time.Time) data.Order {
	names := make([]string, len(order.Items))
	for i, item := range order.Items {
		names[i] = item.Name
	}
	status := order.Status
	if status == "" {
		status = data.ProcessingStatus
	}
	return data.Order{
		CreatedAt:  createdAt,
		ID:         order.ID,
		ItemNames:  names,
		TotalPrice: order.TotalPrice,
		Status:     status,
	}
}

func convert(order data.Order) orderprotocol.Order {
	items := make([]orderprotocol.Item, len(order.ItemNames))
	for i, name := range order.ItemNames {
		items[i] = orderprotocol.Item{Name: name}
	}
	return orderprotocol.Order{
		ID:         order.ID,
		Items:      items,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
	}
}
