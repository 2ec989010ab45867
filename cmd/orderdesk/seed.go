package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go-orderdesk/internal/common/orderprotocol"
)

type OrdersImporter interface {
	ImportOrders(ctx context.Context, orders []orderprotocol.Order) error
}

// seed imports the orders listed in a JSON file, either a bare array of
// orders or an orders response body.
func seed(ctx context.Context, path string, importer OrdersImporter) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	orders, err := decodeOrders(file)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return importer.ImportOrders(ctx, orders) //nolint:wrapcheck // unnecessary
}

func decodeOrders(r io.Reader) ([]orderprotocol.Order, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err //nolint:wrapcheck // unnecessary
	}
	var orders []orderprotocol.Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}
	res := orderprotocol.OrdersResponse{}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err //nolint:wrapcheck // unnecessary
	}
	return res.Orders, nil
}
