package orderlist

import (
	"strings"

	"go-orderdesk/internal/common/orderprotocol"
)

const (
	DefaultCurrencySymbol = "₹"
	DefaultDetailPath     = "/admin/order/"

	processingStatus = "Processing"
)

type SortHint string

const (
	SortAsc SortHint = "asc"
)

type StatusColor string

const (
	StatusRed   StatusColor = "red"
	StatusGreen StatusColor = "green"
)

type Column struct {
	Label string   `json:"label"`
	Field string   `json:"field"`
	Sort  SortHint `json:"sort"`
}

type StatusMarkup struct {
	Text  string      `json:"text"`
	Color StatusColor `json:"color"`
}

// EditAction navigates to the order detail page.
type EditAction struct {
	Path string `json:"path"`
}

// DeleteAction issues a delete for OrderID. Disabled is set once a delete for
// the row has been triggered and not yet settled by a list refresh.
type DeleteAction struct {
	OrderID  string `json:"orderId"`
	Disabled bool   `json:"disabled"`
}

type Actions struct {
	Edit   EditAction   `json:"edit"`
	Delete DeleteAction `json:"delete"`
}

type TableRow struct {
	ID              string       `json:"id"`
	ProductNames    string       `json:"productNames"`
	ItemCount       int          `json:"noOfItems"`
	FormattedAmount string       `json:"amount"`
	Status          StatusMarkup `json:"status"`
	Actions         Actions      `json:"actions"`
}

type TableViewModel struct {
	Columns []Column   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// DisabledFunc reports whether the delete affordance of an order is disabled.
type DisabledFunc func(orderID string) bool

type Config struct {
	CurrencySymbol string
	DetailPath     string
}

type Builder struct {
	cfg Config
}

func NewBuilder(cfg Config) *Builder {
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = DefaultCurrencySymbol
	}
	if cfg.DetailPath == "" {
		cfg.DetailPath = DefaultDetailPath
	}
	return &Builder{
		cfg: cfg,
	}
}

func Columns() []Column {
	return []Column{
		{Label: "ID", Field: "id", Sort: SortAsc},
		{Label: "Product Names", Field: "productNames", Sort: SortAsc},
		{Label: "Number of Items", Field: "noOfItems", Sort: SortAsc},
		{Label: "Amount", Field: "amount", Sort: SortAsc},
		{Label: "Status", Field: "status", Sort: SortAsc},
		{Label: "Actions", Field: "actions", Sort: SortAsc},
	}
}

// Build assembles the table for orders. disabled may be nil.
func (b *Builder) Build(orders []orderprotocol.Order, disabled DisabledFunc) TableViewModel {
	rows := make([]TableRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, b.row(order, disabled))
	}
	return TableViewModel{
		Columns: Columns(),
		Rows:    rows,
	}
}

func (b *Builder) row(order orderprotocol.Order, disabled DisabledFunc) TableRow {
	normalized := Normalize(order)
	return TableRow{
		ID:              order.ID,
		ProductNames:    normalized.ProductNames,
		ItemCount:       normalized.ItemCount,
		FormattedAmount: b.FormatAmount(order),
		Status:          Status(order.Status),
		Actions: Actions{
			Edit: EditAction{
				Path: b.cfg.DetailPath + order.ID,
			},
			Delete: DeleteAction{
				OrderID:  order.ID,
				Disabled: disabled != nil && disabled(order.ID),
			},
		},
	}
}

// FormatAmount prefixes the raw price with the currency symbol, no rounding.
func (b *Builder) FormatAmount(order orderprotocol.Order) string {
	return b.cfg.CurrencySymbol + order.TotalPrice.String()
}

// Status marks any status containing "Processing" red, everything else green.
func Status(status string) StatusMarkup {
	color := StatusGreen
	if strings.Contains(status, processingStatus) {
		color = StatusRed
	}
	return StatusMarkup{
		Text:  status,
		Color: color,
	}
}
