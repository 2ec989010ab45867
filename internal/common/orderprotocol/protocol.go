package orderprotocol

import "github.com/shopspring/decimal"

// Item is a single product line of an order.
type Item struct {
	Name string `json:"name"`
}

// Order is the raw order record as served by the order store. It is read-only
// for everything that consumes it.
type Order struct {
	ID         string          `json:"_id"`
	Items      []Item          `json:"orderItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"orderStatus"`
}

type OrdersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}

type OrderResponse struct {
	Success bool  `json:"success"`
	Order   Order `json:"order"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
