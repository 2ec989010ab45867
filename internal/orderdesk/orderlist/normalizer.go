// Package orderlist turns raw order records into the admin order table.
package orderlist

import (
	"strings"

	"go-orderdesk/internal/common/orderprotocol"
)

const productNamesSeparator = ", "

// Normalized holds the fields derived from an order that both the table and
// the export need.
type Normalized struct {
	ProductNames string
	ItemCount    int
}

func Normalize(order orderprotocol.Order) Normalized {
	return Normalized{
		ProductNames: ProductNames(order),
		ItemCount:    ItemCount(order),
	}
}

// ProductNames joins the item names with ", ". Orders without items give "".
func ProductNames(order orderprotocol.Order) string {
	if len(order.Items) == 0 {
		return ""
	}
	names := make([]string, len(order.Items))
	for i, item := range order.Items {
		names[i] = item.Name
	}
	return strings.Join(names, productNamesSeparator)
}

func ItemCount(order orderprotocol.Order) int {
	return len(order.Items)
}
