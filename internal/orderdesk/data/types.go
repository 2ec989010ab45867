package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessingStatus is the status an order keeps until it is shipped.
const ProcessingStatus = "Processing"

type Order struct {
	CreatedAt  time.Time
	ID         string
	ItemNames  []string
	TotalPrice decimal.Decimal
	Status     string
}
