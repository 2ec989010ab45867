// Package export renders the order list as a paginated PDF report.
package export

import (
	"fmt"
	"strconv"
	"time"

	"go-orderdesk/internal/common/orderprotocol"
	"go-orderdesk/internal/orderdesk/orderlist"
)

const (
	FileName = "order-list.pdf"

	DefaultOrganizationName = "SRI VVB ENTERPRISES"
	DefaultAddressLine      = "10,INDUSTRIAL ESTATE HOSUR"
	DefaultReportTitle      = "ORDER LIST"
	SignatureLabel          = "Authorized Signature"

	titleFontSize    = 18
	subtitleFontSize = 12
	bodyFontSize     = 12

	organizationY = 20
	addressY      = 30
	reportTitleY  = 40
	timestampX    = 14
	timestampY    = 60
	tableStartY   = 70

	signatureRightOffset  = 70
	signatureBottomOffset = 20
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type PageSize struct {
	Width  float64
	Height float64
}

// TextBlock is a single line of text; Y is the baseline.
type TextBlock struct {
	Text     string
	FontSize float64
	X        float64
	Y        float64
	Align    Align
}

// ExportRow is one order as it appears in the report body. Amount is the bare
// price without currency symbol.
type ExportRow struct {
	ID           string
	ProductNames string
	ItemCount    int
	Amount       string
	Status       string
}

func (r ExportRow) Cells() []string {
	return []string{r.ID, r.ProductNames, strconv.Itoa(r.ItemCount), r.Amount, r.Status}
}

type Table struct {
	StartY float64
	Head   []string
	Body   []ExportRow
}

type Document struct {
	Page      PageSize
	Title     []TextBlock
	Timestamp TextBlock
	Table     Table
	Footer    TextBlock
}

func Header() []string {
	return []string{"ID", "Product Names", "Number of Items", "Amount", "Status"}
}

func NewExportRow(order orderprotocol.Order) ExportRow {
	normalized := orderlist.Normalize(order)
	return ExportRow{
		ID:           order.ID,
		ProductNames: normalized.ProductNames,
		ItemCount:    normalized.ItemCount,
		Amount:       order.TotalPrice.String(),
		Status:       order.Status,
	}
}

// FormatTimestamp renders D/M/YYYY H:M:S without zero padding.
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf(
		"%d/%d/%d %d:%d:%d",
		t.Day(),
		int(t.Month()),
		t.Year(),
		t.Hour(),
		t.Minute(),
		t.Second(),
	)
}
